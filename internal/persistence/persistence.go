package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/qdm12/findyourip/internal/counter"
	jsondb "github.com/qdm12/findyourip/internal/persistence/json"
	"github.com/qdm12/findyourip/internal/persistence/postgres"
	"github.com/qdm12/findyourip/internal/persistence/redis"
)

type Backend string

const (
	JSON     Backend = "json"
	Redis    Backend = "redis"
	Postgres Backend = "postgres"
)

func ListBackends() []Backend {
	return []Backend{JSON, Redis, Postgres}
}

// Database is a visitor counter store with a start and stop lifecycle.
// Start creates the counter record if it does not exist.
type Database interface {
	counter.Store
	String() string
	Start(ctx context.Context) (runError <-chan error, err error)
	Stop() (err error)
}

type Settings struct {
	Backend     Backend
	DataDir     string
	Redis       redis.Settings
	PostgresDSN string
}

var ErrBackendUnknown = errors.New("counter backend is unknown")

//nolint:ireturn
func New(settings Settings) (db Database, err error) {
	switch settings.Backend {
	case JSON:
		return jsondb.NewDatabase(settings.DataDir), nil
	case Redis:
		db, err = redis.NewDatabase(settings.Redis)
		if err != nil {
			return nil, fmt.Errorf("creating redis database: %w", err)
		}
		return db, nil
	case Postgres:
		db, err = postgres.NewDatabase(settings.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("creating postgres database: %w", err)
		}
		return db, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrBackendUnknown, settings.Backend)
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qdm12/findyourip/internal/persistence"
	"github.com/qdm12/findyourip/internal/persistence/redis"
	"github.com/qdm12/gosettings"
	"github.com/qdm12/gosettings/reader"
	"github.com/qdm12/gotree"
)

type Counter struct {
	Backend     string
	Redis       redis.Settings
	PostgresDSN string
}

func (c *Counter) setDefaults() {
	c.Backend = gosettings.DefaultComparable(c.Backend, string(persistence.JSON))
	c.Redis.SetDefaults()
}

var (
	ErrBackendNotValid    = errors.New("counter backend is not valid")
	ErrPostgresDSNMissing = errors.New("postgres DSN is missing")
)

func (c Counter) Validate() (err error) {
	backends := persistence.ListBackends()
	valid := false
	backendStrings := make([]string, len(backends))
	for i, backend := range backends {
		backendStrings[i] = string(backend)
		if c.Backend == string(backend) {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("%w: %q must be one of %s",
			ErrBackendNotValid, c.Backend, strings.Join(backendStrings, ", "))
	}

	switch persistence.Backend(c.Backend) {
	case persistence.Redis:
		err = c.Redis.Validate()
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	case persistence.Postgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("%w", ErrPostgresDSNMissing)
		}
		_, err = pgxpool.ParseConfig(c.PostgresDSN)
		if err != nil {
			return fmt.Errorf("postgres DSN: %w", err)
		}
	}

	return nil
}

func (c Counter) String() string {
	return c.toLinesNode().String()
}

func (c Counter) toLinesNode() *gotree.Node {
	node := gotree.New("Visitor counter")
	node.Appendf("Backend: %s", c.Backend)
	switch persistence.Backend(c.Backend) {
	case persistence.Redis:
		node.AppendNode(c.Redis.ToLinesNode())
	case persistence.Postgres:
		node.Appendf("Postgres DSN: [set]")
	}
	return node
}

func (c Counter) ToPersistence(dataDir string) persistence.Settings {
	return persistence.Settings{
		Backend:     persistence.Backend(c.Backend),
		DataDir:     dataDir,
		Redis:       c.Redis,
		PostgresDSN: c.PostgresDSN,
	}
}

func (c *Counter) read(r *reader.Reader) (err error) {
	c.Backend = r.String("COUNTER_BACKEND")
	c.Redis.Address = r.String("REDIS_ADDRESS")
	c.Redis.Password = r.String("REDIS_PASSWORD", reader.ForceLowercase(false))
	c.Redis.Key = r.String("REDIS_KEY", reader.ForceLowercase(false))
	redisDB, err := r.Uint16Ptr("REDIS_DB")
	if err != nil {
		return err
	} else if redisDB != nil {
		db := int(*redisDB)
		c.Redis.DB = &db
	}
	c.PostgresDSN = r.String("POSTGRES_DSN", reader.ForceLowercase(false))
	return nil
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/qdm12/findyourip/internal/counter"
	"github.com/redis/go-redis/v9"
)

// Database stores the visitor count as an integer string at a single
// Redis key, incremented atomically with a Lua script.
type Database struct {
	client *redis.Client
	key    string
}

func NewDatabase(settings Settings) (db *Database, err error) {
	settings.SetDefaults()
	err = settings.Validate()
	if err != nil {
		return nil, fmt.Errorf("validating settings: %w", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     settings.Address,
		Password: settings.Password,
		DB:       *settings.DB,
	})

	return &Database{
		client: client,
		key:    settings.Key,
	}, nil
}

func (db *Database) String() string {
	return "redis counter database"
}

// Start checks the Redis server is reachable and creates the count
// with value 0 if the key does not exist yet.
func (db *Database) Start(ctx context.Context) (_ <-chan error, err error) {
	err = db.client.Ping(ctx).Err()
	if err != nil {
		return nil, fmt.Errorf("%w: pinging redis: %w", counter.ErrStorageUnavailable, err)
	}

	err = db.client.SetNX(ctx, db.key, 0, 0).Err()
	if err != nil {
		return nil, fmt.Errorf("%w: initializing key %s: %w",
			counter.ErrStorageUnavailable, db.key, err)
	}

	_, err = db.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("validating key %s: %w", db.key, err)
	}
	return nil, nil //nolint:nilnil
}

func (db *Database) Stop() (err error) {
	return db.client.Close()
}

var ErrKeyNotFound = errors.New("key not found")

func (db *Database) Read(ctx context.Context) (count uint64, err error) {
	value, err := db.client.Get(ctx, db.key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return 0, fmt.Errorf("%w: %w: %s", counter.ErrStorageUnavailable, ErrKeyNotFound, db.key)
	case err != nil:
		return 0, fmt.Errorf("%w: %w", counter.ErrStorageUnavailable, err)
	}
	return parseCount(value)
}

func (db *Database) Write(ctx context.Context, count uint64) (err error) {
	if count > math.MaxInt64 {
		return fmt.Errorf("%w: %d cannot be incremented by redis",
			counter.ErrCountOverflow, count)
	}
	err = db.client.Set(ctx, db.key, strconv.FormatUint(count, 10), 0).Err()
	if err != nil {
		return fmt.Errorf("%w: %w", counter.ErrStorageUnavailable, err)
	}
	return nil
}

// incrementScript increments the count only if the key exists,
// since INCR alone would recreate a deleted key starting from 0.
var incrementScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return redis.error_reply('` + noKeyReply + `')
end
return redis.call('INCR', KEYS[1])
`)

const noKeyReply = "NOKEY counter key does not exist"

func (db *Database) Increment(ctx context.Context) (newCount uint64, err error) {
	value, err := incrementScript.Run(ctx, db.client, []string{db.key}).Int64()
	if err != nil {
		return 0, wrapIncrementError(err, db.key)
	}
	if value < 0 {
		return 0, fmt.Errorf("%w: negative count %d", counter.ErrCorruptRecord, value)
	}
	return uint64(value), nil
}

func wrapIncrementError(err error, key string) error {
	var redisErr redis.Error
	if !errors.As(err, &redisErr) {
		return fmt.Errorf("%w: %w", counter.ErrStorageUnavailable, err)
	}

	message := redisErr.Error()
	switch {
	case strings.Contains(message, "NOKEY"):
		return fmt.Errorf("%w: %w: %s", counter.ErrStorageUnavailable, ErrKeyNotFound, key)
	case strings.Contains(message, "overflow"):
		return fmt.Errorf("%w: %w", counter.ErrCountOverflow, err)
	default: // the value is not an integer
		return fmt.Errorf("%w: %w", counter.ErrCorruptRecord, err)
	}
}

func parseCount(value string) (count uint64, err error) {
	count, err = strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", counter.ErrCorruptRecord, err)
	}
	return count, nil
}

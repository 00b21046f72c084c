package postgres

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/qdm12/findyourip/internal/counter"
)

const counterID = 1

// Database stores the visitor count in a single row of the
// visitor_counter table, incremented atomically with an UPDATE statement.
type Database struct {
	dsn  string
	pool *pgxpool.Pool
}

func NewDatabase(dsn string) (db *Database, err error) {
	_, err = pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}
	return &Database{
		dsn: dsn,
	}, nil
}

func (db *Database) String() string {
	return "postgres counter database"
}

// Start connects to the database, creates the counter table if needed
// and inserts the counter row with a count of 0 if it does not exist.
func (db *Database) Start(ctx context.Context) (_ <-chan error, err error) {
	db.pool, err = pgxpool.New(ctx, db.dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: creating connection pool: %w",
			counter.ErrStorageUnavailable, err)
	}

	err = db.pool.Ping(ctx)
	if err != nil {
		db.pool.Close()
		return nil, fmt.Errorf("%w: pinging database: %w",
			counter.ErrStorageUnavailable, err)
	}

	const schema = `
		CREATE TABLE IF NOT EXISTS visitor_counter (
			id SMALLINT PRIMARY KEY,
			count BIGINT NOT NULL CHECK (count >= 0)
		)`
	_, err = db.pool.Exec(ctx, schema)
	if err != nil {
		db.pool.Close()
		return nil, fmt.Errorf("%w: creating table: %w", counter.ErrStorageUnavailable, err)
	}

	const seed = `INSERT INTO visitor_counter (id, count) VALUES ($1, 0)
		ON CONFLICT (id) DO NOTHING`
	_, err = db.pool.Exec(ctx, seed, counterID)
	if err != nil {
		db.pool.Close()
		return nil, fmt.Errorf("%w: initializing counter row: %w",
			counter.ErrStorageUnavailable, err)
	}

	return nil, nil //nolint:nilnil
}

func (db *Database) Stop() (err error) {
	db.pool.Close()
	return nil
}

var ErrRowNotFound = errors.New("counter row not found")

func (db *Database) Read(ctx context.Context) (count uint64, err error) {
	const query = `SELECT count FROM visitor_counter WHERE id = $1`
	var value int64
	err = db.pool.QueryRow(ctx, query, counterID).Scan(&value)
	if err != nil {
		return 0, wrapError(err)
	}
	return toCount(value)
}

func (db *Database) Write(ctx context.Context, count uint64) (err error) {
	value, err := fromCount(count)
	if err != nil {
		return err
	}

	const statement = `UPDATE visitor_counter SET count = $2 WHERE id = $1`
	tag, err := db.pool.Exec(ctx, statement, counterID, value)
	if err != nil {
		return wrapError(err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %w", counter.ErrStorageUnavailable, ErrRowNotFound)
	}
	return nil
}

func (db *Database) Increment(ctx context.Context) (newCount uint64, err error) {
	const statement = `UPDATE visitor_counter SET count = count + 1
		WHERE id = $1 RETURNING count`
	var value int64
	err = db.pool.QueryRow(ctx, statement, counterID).Scan(&value)
	if err != nil {
		return 0, wrapError(err)
	}
	return toCount(value)
}

func wrapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %w", counter.ErrStorageUnavailable, ErrRowNotFound)
	}
	return fmt.Errorf("%w: %w", counter.ErrStorageUnavailable, err)
}

func toCount(value int64) (count uint64, err error) {
	if value < 0 {
		return 0, fmt.Errorf("%w: negative count %d", counter.ErrCorruptRecord, value)
	}
	return uint64(value), nil
}

// fromCount converts the count to the BIGINT column type.
func fromCount(count uint64) (value int64, err error) {
	if count > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %d does not fit in a BIGINT", counter.ErrCountOverflow, count)
	}
	return int64(count), nil
}

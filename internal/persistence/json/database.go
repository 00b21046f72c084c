package json

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/qdm12/findyourip/internal/counter"
)

const filename = "visitorCount.json"

// Database is a visitor count record stored as a JSON file.
type Database struct {
	filepath string
	sync.RWMutex
}

// NewDatabase returns a JSON file database storing its record in
// the file visitorCount.json in the given data directory.
// The record is only created once Start is called.
func NewDatabase(dataDir string) *Database {
	return &Database{
		filepath: filepath.Join(dataDir, filename),
	}
}

func (db *Database) String() string {
	return "json counter database"
}

func (db *Database) Filepath() string {
	return db.filepath
}

// Start creates the record with a count of 0 if the file does not exist,
// or validates the existing record otherwise.
func (db *Database) Start(_ context.Context) (_ <-chan error, err error) {
	db.Lock()
	defer db.Unlock()

	const dirPerms = fs.FileMode(0o700)
	err = os.MkdirAll(filepath.Dir(db.filepath), dirPerms)
	if err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %w",
			counter.ErrStorageUnavailable, err)
	}

	_, err = os.Stat(db.filepath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		err = db.write(0)
		if err != nil {
			return nil, fmt.Errorf("initializing record: %w", err)
		}
		return nil, nil //nolint:nilnil
	case err != nil:
		return nil, fmt.Errorf("%w: %w", counter.ErrStorageUnavailable, err)
	}

	_, err = db.read()
	if err != nil {
		return nil, fmt.Errorf("%s validation error: %w", db.filepath, err)
	}
	return nil, nil //nolint:nilnil
}

func (db *Database) Stop() (err error) {
	db.Lock() // ensure a write operation finishes
	defer db.Unlock()
	return nil
}

func (db *Database) Read(_ context.Context) (count uint64, err error) {
	db.RLock()
	defer db.RUnlock()
	return db.read()
}

func (db *Database) Write(_ context.Context, count uint64) (err error) {
	db.Lock()
	defer db.Unlock()
	return db.write(count)
}

// Increment reads, increments and writes back the count while holding
// the database lock, so concurrent increments within this process are
// never lost. Other processes writing the same file are not synchronized.
func (db *Database) Increment(_ context.Context) (newCount uint64, err error) {
	db.Lock()
	defer db.Unlock()

	count, err := db.read()
	if err != nil {
		return 0, err
	}

	if count == math.MaxUint64 {
		return 0, fmt.Errorf("%w: %d", counter.ErrCountOverflow, count)
	}

	newCount = count + 1
	err = db.write(newCount)
	if err != nil {
		return 0, err
	}
	return newCount, nil
}

func (db *Database) read() (count uint64, err error) {
	data, err := os.ReadFile(db.filepath)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", counter.ErrStorageUnavailable, err)
	}
	return decodeRecord(data)
}

var ErrCountFieldMissing = errors.New("count field is missing")

func decodeRecord(data []byte) (count uint64, err error) {
	if !json.Valid(data) {
		return 0, fmt.Errorf("%w: file content is not valid JSON",
			counter.ErrStorageUnavailable)
	}

	var fields map[string]json.RawMessage
	err = json.Unmarshal(data, &fields)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", counter.ErrCorruptRecord, err)
	}

	rawCount, ok := fields["count"]
	if !ok || string(rawCount) == "null" {
		return 0, fmt.Errorf("%w: %w", counter.ErrCorruptRecord, ErrCountFieldMissing)
	}

	err = json.Unmarshal(rawCount, &count)
	if err != nil {
		return 0, fmt.Errorf("%w: count field: %w", counter.ErrCorruptRecord, err)
	}
	return count, nil
}

type record struct {
	Count uint64 `json:"count"`
}

// write replaces the file atomically by writing to a temporary file
// in the same directory and renaming it over the record file.
func (db *Database) write(count uint64) (err error) {
	data, err := json.Marshal(record{Count: count})
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	dir := filepath.Dir(db.filepath)
	file, err := os.CreateTemp(dir, "."+filename+"-*")
	if err != nil {
		return fmt.Errorf("%w: %w", counter.ErrStorageUnavailable, err)
	}
	tempPath := file.Name()

	_, err = file.Write(data)
	if err != nil {
		_ = file.Close()
		_ = os.Remove(tempPath)
		return fmt.Errorf("%w: writing temporary file: %w", counter.ErrStorageUnavailable, err)
	}

	err = file.Close()
	if err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("%w: closing temporary file: %w", counter.ErrStorageUnavailable, err)
	}

	const filePerms = fs.FileMode(0o644)
	err = os.Chmod(tempPath, filePerms)
	if err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("%w: %w", counter.ErrStorageUnavailable, err)
	}

	err = os.Rename(tempPath, db.filepath)
	if err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("%w: replacing record file: %w", counter.ErrStorageUnavailable, err)
	}
	return nil
}

package counter

import "context"

//go:generate mockgen -destination=mock_$GOPACKAGE/$GOFILE . Store,AtomicStore,Notifier

// Store is a visitor count record storage.
// Read must fail with an error wrapping ErrStorageUnavailable if the record
// cannot be obtained, and with an error wrapping ErrCorruptRecord if the
// record does not hold a valid count.
type Store interface {
	Read(ctx context.Context) (count uint64, err error)
	Write(ctx context.Context, count uint64) (err error)
}

// Incrementer is implemented by stores able to increment
// the count atomically.
type Incrementer interface {
	Increment(ctx context.Context) (count uint64, err error)
}

type AtomicStore interface {
	Store
	Incrementer
}

type Logger interface {
	Debug(s string)
}

type Metrics interface {
	SetCount(count uint64)
	Incremented()
	Failed(operation string)
}

type Notifier interface {
	Notify(message string)
}

package backup

import "context"

type CountReader interface {
	Count(ctx context.Context) (count uint64, err error)
}

type Logger interface {
	Debug(s string)
	Info(s string)
	Warn(s string)
}

package health

import "context"

type CountReader interface {
	Count(ctx context.Context) (count uint64, err error)
}

type Logger interface {
	Info(s string)
	Warn(s string)
	Error(s string)
}

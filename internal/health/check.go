package health

import (
	"context"
	"fmt"
	"time"
)

// MakeIsHealthy returns a function checking the visitor count
// can be read from the counter store.
func MakeIsHealthy(counter CountReader, logger Logger) func(ctx context.Context) error {
	return func(ctx context.Context) (err error) {
		err = isHealthy(ctx, counter)
		if err != nil {
			logger.Warn("unhealthy: " + err.Error())
		}
		return err
	}
}

func isHealthy(ctx context.Context, counter CountReader) (err error) {
	const timeout = 3 * time.Second
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err = counter.Count(ctx)
	if err != nil {
		return fmt.Errorf("reading visitor count: %w", err)
	}
	return nil
}

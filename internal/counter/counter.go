package counter

import (
	"context"
	"fmt"
	"math"
	"strconv"
)

type Service struct {
	store    Store
	logger   Logger
	metrics  Metrics
	notifier Notifier
}

func New(store Store, logger Logger, metrics Metrics, notifier Notifier) *Service {
	return &Service{
		store:    store,
		logger:   logger,
		metrics:  metrics,
		notifier: notifier,
	}
}

// Count returns the current visitor count without modifying it.
func (s *Service) Count(ctx context.Context) (count uint64, err error) {
	count, err = s.store.Read(ctx)
	if err != nil {
		return 0, s.fail("read", err)
	}
	s.metrics.SetCount(count)
	return count, nil
}

// Increment advances the visitor count by exactly one and returns
// the new count. If the store provides an atomic increment, it is used,
// otherwise the count is read and written back, which may lose updates
// racing with other writers.
func (s *Service) Increment(ctx context.Context) (newCount uint64, err error) {
	if incrementer, ok := s.store.(Incrementer); ok {
		newCount, err = incrementer.Increment(ctx)
		if err != nil {
			return 0, s.fail("increment", err)
		}
	} else {
		newCount, err = s.readModifyWrite(ctx)
		if err != nil {
			return 0, s.fail("increment", err)
		}
	}

	s.logger.Debug("visitor count incremented to " + strconv.FormatUint(newCount, 10))
	s.metrics.Incremented()
	s.metrics.SetCount(newCount)
	return newCount, nil
}

func (s *Service) readModifyWrite(ctx context.Context) (newCount uint64, err error) {
	count, err := s.store.Read(ctx)
	if err != nil {
		return 0, err
	}

	if count == math.MaxUint64 {
		return 0, fmt.Errorf("%w: %d", ErrCountOverflow, count)
	}
	newCount = count + 1
	err = s.store.Write(ctx, newCount)
	if err != nil {
		return 0, err
	}
	return newCount, nil
}

// fail records the store failure for the given operation, notifies
// the operator and returns the error wrapped as a counter error.
func (s *Service) fail(operation string, storeErr error) (err error) {
	s.metrics.Failed(operation)
	err = fmt.Errorf("%w: %w", ErrCounterUnavailable, storeErr)
	s.notifier.Notify("visitor count " + operation + " failed: " + storeErr.Error())
	return err
}

package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"
	"time"
)

type Service struct {
	// Injected fields
	backupPeriod time.Duration
	outputDir    string
	counter      CountReader
	logger       Logger
	timeNow      func() time.Time

	// Internal fields
	stopCh chan<- struct{}
	done   <-chan struct{}
}

func New(backupPeriod time.Duration, outputDir string,
	counter CountReader, logger Logger, timeNow func() time.Time) *Service {
	return &Service{
		backupPeriod: backupPeriod,
		outputDir:    outputDir,
		counter:      counter,
		logger:       logger,
		timeNow:      timeNow,
	}
}

func (s *Service) String() string {
	return "backup"
}

func makeZipFileName(now time.Time) string {
	return "findyourip-backup-" + strconv.FormatInt(now.UnixNano(), 10) + ".zip"
}

func (s *Service) Start(ctx context.Context) (runError <-chan error, startErr error) {
	ready := make(chan struct{})
	runErrorCh := make(chan error)
	stopCh := make(chan struct{})
	s.stopCh = stopCh
	done := make(chan struct{})
	s.done = done
	go s.run(ready, runErrorCh, stopCh, done)
	select {
	case <-ready:
	case <-ctx.Done():
		return nil, s.Stop()
	}
	return runErrorCh, nil
}

func (s *Service) run(ready chan<- struct{}, runError chan<- error,
	stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	if s.backupPeriod == 0 {
		close(ready)
		s.logger.Info("disabled")
		return
	}

	s.logger.Info("each " + s.backupPeriod.String() +
		"; writing zip files to directory " + s.outputDir)
	timer := time.NewTimer(s.backupPeriod)
	close(ready)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-stopCh:
			cancel()
		case <-ctx.Done():
		}
	}()

	for {
		select {
		case <-timer.C:
		case <-ctx.Done():
			_ = timer.Stop()
			return
		}

		err := s.backup(ctx)
		switch {
		case err == nil:
		case ctx.Err() != nil:
			return
		default:
			runError <- err
			return
		}
		timer.Reset(s.backupPeriod)
	}
}

// backup writes the current visitor count record to a new zip file.
// A count read failure is only logged, since the storage may recover.
func (s *Service) backup(ctx context.Context) (err error) {
	count, err := s.counter.Count(ctx)
	if err != nil {
		s.logger.Warn("skipping backup: " + err.Error())
		return nil
	}

	data, err := json.Marshal(struct {
		Count uint64 `json:"count"`
	}{Count: count})
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}

	now := s.timeNow()
	outputPath := filepath.Join(s.outputDir, makeZipFileName(now))
	err = zipFile(outputPath, "visitorCount.json", data, now)
	if err != nil {
		return fmt.Errorf("zipping visitor count: %w", err)
	}
	s.logger.Debug("backed up visitor count " + strconv.FormatUint(count, 10) +
		" to " + outputPath)
	return nil
}

func (s *Service) Stop() (err error) {
	close(s.stopCh)
	<-s.done
	return nil
}

package backup

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countReaderFunc func(ctx context.Context) (uint64, error)

func (f countReaderFunc) Count(ctx context.Context) (uint64, error) { return f(ctx) }

type noopLogger struct{}

func (noopLogger) Debug(string) {}
func (noopLogger) Info(string)  {}
func (noopLogger) Warn(string)  {}

func Test_Service_backup(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	service := New(time.Hour, outputDir,
		countReaderFunc(func(context.Context) (uint64, error) { return 42, nil }),
		noopLogger{}, func() time.Time { return now })

	err := service.backup(context.Background())
	require.NoError(t, err)

	zipPath := filepath.Join(outputDir, makeZipFileName(now))
	reader, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer reader.Close()

	require.Len(t, reader.File, 1)
	assert.Equal(t, "visitorCount.json", reader.File[0].Name)
	file, err := reader.File[0].Open()
	require.NoError(t, err)
	defer file.Close()
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, `{"count":42}`, string(content))
}

func Test_Service_backup_countFailure(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	service := New(time.Hour, outputDir,
		countReaderFunc(func(context.Context) (uint64, error) {
			return 0, errors.New("storage unavailable")
		}),
		noopLogger{}, time.Now)

	err := service.backup(context.Background())
	require.NoError(t, err)

	entries, err := os.ReadDir(outputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func Test_Service_StartStop(t *testing.T) {
	t.Parallel()

	outputDir := t.TempDir()
	written := make(chan struct{}, 1)
	service := New(time.Millisecond, outputDir,
		countReaderFunc(func(context.Context) (uint64, error) {
			select {
			case written <- struct{}{}:
			default:
			}
			return 1, nil
		}),
		noopLogger{}, time.Now)

	runError, err := service.Start(context.Background())
	require.NoError(t, err)

	select {
	case <-written:
	case err := <-runError:
		t.Fatalf("unexpected run error: %s", err)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for backup")
	}

	err = service.Stop()
	require.NoError(t, err)
}

func Test_Service_disabled(t *testing.T) {
	t.Parallel()

	service := New(0, t.TempDir(), nil, noopLogger{}, time.Now)

	_, err := service.Start(context.Background())
	require.NoError(t, err)
	err = service.Stop()
	assert.NoError(t, err)
}

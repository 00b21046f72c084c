package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countReaderFunc func(ctx context.Context) (uint64, error)

func (f countReaderFunc) Count(ctx context.Context) (uint64, error) { return f(ctx) }

type testLogger struct {
	warnings []string
}

func (l *testLogger) Info(string)   {}
func (l *testLogger) Warn(s string) { l.warnings = append(l.warnings, s) }
func (l *testLogger) Error(string)  {}

func Test_MakeIsHealthy(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}
	healthy := MakeIsHealthy(countReaderFunc(func(context.Context) (uint64, error) {
		return 3, nil
	}), logger)
	assert.NoError(t, healthy(context.Background()))
	assert.Empty(t, logger.warnings)

	unhealthy := MakeIsHealthy(countReaderFunc(func(context.Context) (uint64, error) {
		return 0, errors.New("counter storage unavailable")
	}), logger)
	err := unhealthy(context.Background())
	assert.EqualError(t, err, "reading visitor count: counter storage unavailable")
	assert.Equal(t, []string{"unhealthy: reading visitor count: counter storage unavailable"},
		logger.warnings)
}

func Test_handler_and_client(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		healthErr  error
		errWrapped error
		errMessage string
	}{
		"healthy": {},
		"unhealthy": {
			healthErr:  errors.New("reading visitor count: file missing"),
			errWrapped: ErrUnhealthy,
			errMessage: "program is unhealthy: reading visitor count: file missing",
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(newHandler(func(context.Context) error {
				return testCase.healthErr
			}))
			t.Cleanup(server.Close)

			client := NewClient()
			address := strings.TrimPrefix(server.URL, "http://")

			err := client.Query(context.Background(), address)

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
		})
	}
}

func Test_handler_notFound(t *testing.T) {
	t.Parallel()

	handler := newHandler(func(context.Context) error { return nil })

	request := httptest.NewRequest(http.MethodGet, "/other", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	request = httptest.NewRequest(http.MethodPost, "/", nil)
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

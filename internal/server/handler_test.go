package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/qdm12/findyourip/internal/counter"
	"github.com/qdm12/findyourip/internal/metrics"
	jsondb "github.com/qdm12/findyourip/internal/persistence/json"
	"github.com/qdm12/findyourip/internal/server/mock_server"
	"github.com/qdm12/findyourip/pkg/geolocation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(string) {}
func (noopLogger) Info(string)  {}
func (noopLogger) Warn(string)  {}
func (noopLogger) Error(string) {}

type noopNotifier struct{}

func (noopNotifier) Notify(string) {}

func newTestHandler(t *testing.T, settings Settings) http.Handler {
	t.Helper()
	if settings.Logger == nil {
		settings.Logger = noopLogger{}
	}
	if settings.Metrics == nil {
		settings.Metrics = metrics.New(prometheus.NewRegistry())
	}
	handler, err := newHandler(settings)
	require.NoError(t, err)
	return handler
}

func doRequest(t *testing.T, handler http.Handler, method, target string) (
	status int, body string) {
	t.Helper()
	request := httptest.NewRequest(method, target, nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	response := recorder.Result()
	defer response.Body.Close()
	b, err := io.ReadAll(response.Body)
	require.NoError(t, err)
	return response.StatusCode, string(b)
}

func Test_visitorCounter_endToEnd(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	recordPath := filepath.Join(dataDir, "visitorCount.json")
	err := os.WriteFile(recordPath, []byte(`{"count": 5}`), 0o600)
	require.NoError(t, err)

	db := jsondb.NewDatabase(dataDir)
	_, err = db.Start(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Stop() })

	registry := prometheus.NewRegistry()
	metrics := metrics.New(registry)
	counterService := counter.New(db, noopLogger{}, metrics, noopNotifier{})

	handler := newTestHandler(t, Settings{
		RootURL: "/",
		Counter: counterService,
		Metrics: metrics,
	})

	status, body := doRequest(t, handler, http.MethodPost, "/api/incrementVisitorCount")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `{"count":6}`+"\n", body)

	data, err := os.ReadFile(recordPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"count": 6}`, string(data))

	status, body = doRequest(t, handler, http.MethodGet, "/api/getVisitorCount")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `{"count":6}`+"\n", body)

	status, _ = doRequest(t, handler, http.MethodGet, "/api/incrementVisitorCount")
	assert.Equal(t, http.StatusMethodNotAllowed, status)
}

func Test_getVisitorCount_storageFailure(t *testing.T) {
	t.Parallel()

	dataDir := t.TempDir()
	db := jsondb.NewDatabase(dataDir) // never started so the record is missing
	metrics := metrics.New(prometheus.NewRegistry())
	counterService := counter.New(db, noopLogger{}, metrics, noopNotifier{})

	handler := newTestHandler(t, Settings{
		Counter: counterService,
		Metrics: metrics,
	})

	status, body := doRequest(t, handler, http.MethodGet, "/api/getVisitorCount")

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body, `{"error":"visitor counter unavailable: counter storage unavailable`)

	status, _ = doRequest(t, handler, http.MethodPost, "/api/incrementVisitorCount")
	assert.Equal(t, http.StatusInternalServerError, status)
}

func Test_getLocation(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		result geolocation.Result
		err    error
		status int
		body   string
	}{
		"success": {
			result: geolocation.Result{
				IP:        netip.MustParseAddr("203.0.113.7"),
				City:      "Paris",
				Region:    "Ile-de-France",
				Country:   "France",
				Latitude:  48.85,
				Longitude: 2.35,
			},
			status: http.StatusOK,
			body: `{"ip":"203.0.113.7","city":"Paris","region":"Ile-de-France",` +
				`"country_name":"France","latitude":48.85,"longitude":2.35}` + "\n",
		},
		"upstream error": {
			err:    errors.New("upstream returned an error: RateLimited"),
			status: http.StatusBadGateway,
			body:   `{"error":"upstream returned an error: RateLimited"}` + "\n",
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			locator := mock_server.NewMockLocator(ctrl)
			// httptest requests come from 192.0.2.1 which is not private
			locator.EXPECT().Locate(gomock.Any(), netip.MustParseAddr("192.0.2.1")).
				Return(testCase.result, testCase.err)

			handler := newTestHandler(t, Settings{Locator: locator})

			status, body := doRequest(t, handler, http.MethodGet, "/api/location")

			assert.Equal(t, testCase.status, status)
			assert.Equal(t, testCase.body, body)
		})
	}
}

func Test_getLookup(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	resolver := mock_server.NewMockResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "example.com").
		Return(netip.MustParseAddr("93.184.216.34"), nil)
	resolver.EXPECT().Resolve(gomock.Any(), "invalid").
		Return(netip.Addr{}, errors.New("no answer found"))

	handler := newTestHandler(t, Settings{Resolver: resolver})

	status, body := doRequest(t, handler, http.MethodGet, "/api/lookup?domain=example.com")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, `{"domain":"example.com","ip":"93.184.216.34"}`+"\n", body)

	status, body = doRequest(t, handler, http.MethodGet, "/api/lookup?domain=invalid")
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, `{"error":"no answer found"}`+"\n", body)

	status, _ = doRequest(t, handler, http.MethodGet, "/api/lookup")
	assert.Equal(t, http.StatusBadRequest, status)
}

func Test_index(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	locator := mock_server.NewMockLocator(ctrl)
	locator.EXPECT().Locate(gomock.Any(), gomock.Any()).
		Return(geolocation.Result{
			IP:        netip.MustParseAddr("203.0.113.7"),
			City:      "Lyon",
			Region:    "Auvergne-Rhone-Alpes",
			Country:   "France",
			Latitude:  1.0,
			Longitude: 2.0,
		}, nil)
	counter := mock_server.NewMockCounter(ctrl)
	counter.EXPECT().Count(gomock.Any()).Return(uint64(5), nil)
	counter.EXPECT().Increment(gomock.Any()).Return(uint64(6), nil)

	handler := newTestHandler(t, Settings{
		RootURL: "/findyourip/",
		Locator: locator,
		Counter: counter,
	})

	status, body := doRequest(t, handler, http.MethodGet, "/findyourip/")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "203.0.113.7")
	assert.Contains(t, body, "Lyon, Auvergne-Rhone-Alpes, France")
	assert.Contains(t, body, `setView([ 1 ,  2 ],  13 )`)
	assert.Contains(t, body, "Your location")
	assert.Contains(t, body, "6 IP addresses have been located")
	assert.Contains(t, body, `href="/findyourip/lookup"`)
}

func Test_index_rootURLPaths(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		rootURL string
		target  string
	}{
		"root":                      {rootURL: "/", target: "/"},
		"prefix_with_slash":         {rootURL: "/findyourip/", target: "/findyourip/"},
		"prefix_without_slash":      {rootURL: "/findyourip/", target: "/findyourip"},
		"prefix_setting_no_slash":   {rootURL: "/findyourip", target: "/findyourip/"},
		"prefix_both_without_slash": {rootURL: "/findyourip", target: "/findyourip"},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			locator := mock_server.NewMockLocator(ctrl)
			locator.EXPECT().Locate(gomock.Any(), gomock.Any()).
				Return(geolocation.Result{}, errors.New("dummy"))
			counter := mock_server.NewMockCounter(ctrl)
			counter.EXPECT().Count(gomock.Any()).Return(uint64(1), nil)

			handler := newTestHandler(t, Settings{
				RootURL: testCase.rootURL,
				Locator: locator,
				Counter: counter,
			})

			status, body := doRequest(t, handler, http.MethodGet, testCase.target)

			assert.Equal(t, http.StatusOK, status)
			assert.Contains(t, body, "1 IP addresses have been located")
		})
	}
}

func Test_index_locationFailed(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	locator := mock_server.NewMockLocator(ctrl)
	locator.EXPECT().Locate(gomock.Any(), gomock.Any()).
		Return(geolocation.Result{}, errors.New("too many requests sent"))
	counter := mock_server.NewMockCounter(ctrl)
	counter.EXPECT().Count(gomock.Any()).Return(uint64(5), nil)

	handler := newTestHandler(t, Settings{
		Locator: locator,
		Counter: counter,
	})

	status, body := doRequest(t, handler, http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "too many requests sent")
	assert.Contains(t, body, `setView([ 0 ,  0 ],  2 )`)
	assert.NotContains(t, body, "Your location")
	assert.Contains(t, body, "5 IP addresses have been located")
}

func Test_lookupPage(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	resolver := mock_server.NewMockResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "example.com").
		Return(netip.Addr{}, errors.New("no answer found"))
	counter := mock_server.NewMockCounter(ctrl)
	counter.EXPECT().Count(gomock.Any()).Return(uint64(9), nil)

	handler := newTestHandler(t, Settings{
		Resolver: resolver,
		Counter:  counter,
	})

	status, body := doRequest(t, handler, http.MethodGet, "/lookup?domain=example.com")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "Failed to lookup domain IP")
	assert.Contains(t, body, "9 IP addresses have been located")
	assert.False(t, strings.Contains(body, "L.map("))
}

func Test_lookupPage_success(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	resolver := mock_server.NewMockResolver(ctrl)
	resolver.EXPECT().Resolve(gomock.Any(), "example.com").
		Return(netip.MustParseAddr("93.184.216.34"), nil)
	counter := mock_server.NewMockCounter(ctrl)
	counter.EXPECT().Count(gomock.Any()).Return(uint64(9), nil)

	handler := newTestHandler(t, Settings{
		RootURL:  "/findyourip/",
		Resolver: resolver,
		Counter:  counter,
	})

	status, body := doRequest(t, handler, http.MethodGet, "/findyourip/lookup?domain=example.com")

	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "<strong>IP Address for example.com:</strong> 93.184.216.34")
	assert.Contains(t, body, `value="example.com"`)
	assert.NotContains(t, body, "Failed to lookup domain IP")
	assert.Contains(t, body, "9 IP addresses have been located")
}

func Test_metricsEndpoint(t *testing.T) {
	t.Parallel()

	handler := newTestHandler(t, Settings{
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("metrics"))
		}),
	})

	status, body := doRequest(t, handler, http.MethodGet, "/metrics")

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "metrics", body)
}

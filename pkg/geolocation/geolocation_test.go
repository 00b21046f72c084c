package geolocation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(providers ...provider) *Client {
	return &Client{
		providers:     providers,
		retries:       2,
		retryInterval: time.Millisecond,
	}
}

func Test_Client_Locate(t *testing.T) {
	t.Parallel()

	testCases := map[string]struct {
		handlers   []http.HandlerFunc
		result     Result
		errWrapped error
		errMessage string
		calls      int32
	}{
		"success": {
			handlers: []http.HandlerFunc{
				func(w http.ResponseWriter, _ *http.Request) {
					_, _ = w.Write([]byte(`{"ip":"1.2.3.4","city":"Paris",` +
						`"region":"Ile-de-France","country_name":"France",` +
						`"latitude":1.0,"longitude":2.0}`))
				},
			},
			result: Result{
				IP:        netip.AddrFrom4([4]byte{1, 2, 3, 4}),
				City:      "Paris",
				Region:    "Ile-de-France",
				Country:   "France",
				Latitude:  1,
				Longitude: 2,
				Source:    string(IPAPI),
			},
			calls: 1,
		},
		"error envelope not retried": {
			handlers: []http.HandlerFunc{
				func(w http.ResponseWriter, _ *http.Request) {
					_, _ = w.Write([]byte(`{"error":true,"reason":"RateLimited"}`))
				},
			},
			errWrapped: ErrUpstream,
			errMessage: "upstream returned an error: RateLimited",
			calls:      1,
		},
		"too many requests not retried": {
			handlers: []http.HandlerFunc{
				func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusTooManyRequests)
				},
			},
			errWrapped: ErrTooManyRequests,
			errMessage: "too many requests sent ()",
			calls:      1,
		},
		"server error retried then success": {
			handlers: []http.HandlerFunc{
				func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusBadGateway)
				},
				func(w http.ResponseWriter, _ *http.Request) {
					_, _ = w.Write([]byte(`{"ip":"1.2.3.4","latitude":1.5,"longitude":-2.5}`))
				},
			},
			result: Result{
				IP:        netip.AddrFrom4([4]byte{1, 2, 3, 4}),
				Latitude:  1.5,
				Longitude: -2.5,
				Source:    string(IPAPI),
			},
			calls: 2,
		},
		"server error retries exhausted": {
			handlers: []http.HandlerFunc{
				func(w http.ResponseWriter, _ *http.Request) {
					w.WriteHeader(http.StatusServiceUnavailable)
				},
			},
			errWrapped: ErrServerSide,
			errMessage: "server side error: 503 Service Unavailable ()",
			calls:      3,
		},
	}

	for name, testCase := range testCases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var calls atomic.Int32
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				call := calls.Add(1)
				index := int(call) - 1
				if index >= len(testCase.handlers) {
					index = len(testCase.handlers) - 1
				}
				testCase.handlers[index](w, r)
			}))
			t.Cleanup(server.Close)

			client := newTestClient(newIPAPI(server.Client(), server.URL))

			result, err := client.Locate(context.Background(), netip.Addr{})

			assert.ErrorIs(t, err, testCase.errWrapped)
			if testCase.errWrapped != nil {
				assert.EqualError(t, err, testCase.errMessage)
			}
			assert.Equal(t, testCase.result, result)
			assert.Equal(t, testCase.calls, calls.Load())
		})
	}
}

func Test_Client_Locate_canceledContext(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := newTestClient(newIPAPI(server.Client(), server.URL))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Locate(ctx, netip.Addr{})

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func Test_New(t *testing.T) {
	t.Parallel()

	client, err := New(http.DefaultClient)
	require.NoError(t, err)
	require.Len(t, client.providers, 1)
	assert.IsType(t, &ipapi{}, client.providers[0])
	assert.Equal(t, uint(2), client.retries)

	_, err = New(http.DefaultClient, SetProviders("unknown"))
	assert.ErrorIs(t, err, ErrUnknownProvider)
	assert.EqualError(t, err, "applying option: unknown provider: unknown")

	client, err = New(http.DefaultClient,
		SetProviders(Ipinfo, IP2Location), SetRetries(0))
	require.NoError(t, err)
	assert.Len(t, client.providers, 2)
	assert.Equal(t, uint(0), client.retries)

	_, err = New(http.DefaultClient, SetRetryInterval(0))
	assert.ErrorIs(t, err, ErrRetryIntervalNotPositive)
}

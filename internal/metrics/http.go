package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
)

// Middleware records the duration, count and in flight number of
// HTTP requests. Endpoints are labelled with their chi route pattern
// to keep the label cardinality bounded.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		wrapped := &statusResponseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		endpoint := "unmatched"
		if routeContext := chi.RouteContext(r.Context()); routeContext != nil {
			if pattern := routeContext.RoutePattern(); pattern != "" {
				endpoint = pattern
			}
		}
		status := strconv.Itoa(wrapped.statusCode)

		m.httpRequestDuration.WithLabelValues(r.Method, endpoint, status).
			Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(r.Method, endpoint, status).Inc()
	})
}

type statusResponseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusResponseWriter) WriteHeader(code int) {
	w.statusCode = code
	w.ResponseWriter.WriteHeader(code)
}

// InstrumentClient returns a copy of the given client whose requests
// are observed in the upstream request duration histogram.
func (m *Metrics) InstrumentClient(client *http.Client) *http.Client {
	transport := client.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	return &http.Client{
		Timeout:       client.Timeout,
		CheckRedirect: client.CheckRedirect,
		Jar:           client.Jar,
		Transport: &roundTripper{
			proxied:  transport,
			duration: m.upstreamDuration,
		},
	}
}

type roundTripper struct {
	proxied  http.RoundTripper
	duration prometheus.ObserverVec
}

func (r *roundTripper) RoundTrip(request *http.Request) (*http.Response, error) {
	start := time.Now()
	response, err := r.proxied.RoundTrip(request)
	status := "error"
	if err == nil {
		status = strconv.Itoa(response.StatusCode)
	}
	r.duration.WithLabelValues(request.URL.Host, status).
		Observe(time.Since(start).Seconds())
	return response, err
}

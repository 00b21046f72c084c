package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	httpRequestDuration *prometheus.HistogramVec
	httpRequestsTotal   *prometheus.CounterVec
	httpInFlight        prometheus.Gauge

	upstreamDuration *prometheus.HistogramVec

	visitorCount      prometheus.Gauge
	incrementsTotal   prometheus.Counter
	counterFailures   *prometheus.CounterVec
	locationsTotal    *prometheus.CounterVec
	domainLookupTotal *prometheus.CounterVec
}

// New creates and registers all the metrics on the given registerer.
func New(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "endpoint", "status"},
		),
		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		httpInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),
		upstreamDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "upstream_request_duration_seconds",
				Help:    "Duration of outbound requests to geolocation and DNS APIs in seconds",
				Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"host", "status"},
		),
		visitorCount: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "visitor_count",
				Help: "Latest visitor count read from or written to the counter store",
			},
		),
		incrementsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "visitor_count_increments_total",
				Help: "Total number of successful visitor count increments",
			},
		),
		counterFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "visitor_count_failures_total",
				Help: "Total number of failed visitor counter operations",
			},
			[]string{"operation"},
		),
		locationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "locations_total",
				Help: "Total number of caller location attempts",
			},
			[]string{"result"},
		),
		domainLookupTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "domain_lookups_total",
				Help: "Total number of domain lookup attempts",
			},
			[]string{"result"},
		),
	}
}

func (m *Metrics) SetCount(count uint64) {
	m.visitorCount.Set(float64(count))
}

func (m *Metrics) Incremented() {
	m.incrementsTotal.Inc()
}

func (m *Metrics) Failed(operation string) {
	m.counterFailures.WithLabelValues(operation).Inc()
}

func (m *Metrics) Located(success bool) {
	m.locationsTotal.WithLabelValues(resultLabel(success)).Inc()
}

func (m *Metrics) LookedUp(success bool) {
	m.domainLookupTotal.WithLabelValues(resultLabel(success)).Inc()
}

func resultLabel(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}

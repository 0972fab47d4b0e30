// Package metrics provides Prometheus collectors for upstream sources and
// the HTTP API
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics contains the application's Prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequestsTotal *prometheus.CounterVec
	upstreamDuration      *prometheus.HistogramVec
	fallbacksTotal        *prometheus.CounterVec

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// New creates the collectors and registers them with registry
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

// NewRegistry returns a registry with the Go and process collectors
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// Registry returns the registry the collectors belong to
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) initMetrics() {
	m.upstreamRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "angler_upstream_requests_total",
			Help: "Total number of upstream data source requests",
		},
		[]string{"source", "status"}, // status: success, error
	)

	m.upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "angler_upstream_duration_seconds",
			Help: "Time taken by upstream data source requests",
			// 50ms to ~25s
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"source"},
	)

	m.fallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "angler_fallbacks_total",
			Help: "Total number of readings served from fallback values or estimates",
		},
		[]string{"source"},
	)

	m.httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "angler_http_requests_total",
			Help: "Total number of HTTP API requests",
		},
		[]string{"method", "route", "status"},
	)

	m.httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "angler_http_request_duration_seconds",
			Help:    "HTTP API request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
}

// Describe implements the Collector interface
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.upstreamRequestsTotal.Describe(ch)
	m.upstreamDuration.Describe(ch)
	m.fallbacksTotal.Describe(ch)
	m.httpRequestsTotal.Describe(ch)
	m.httpRequestDuration.Describe(ch)
}

// Collect implements the Collector interface
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.upstreamRequestsTotal.Collect(ch)
	m.upstreamDuration.Collect(ch)
	m.fallbacksTotal.Collect(ch)
	m.httpRequestsTotal.Collect(ch)
	m.httpRequestDuration.Collect(ch)
}

// ObserveUpstream records one upstream call
func (m *Metrics) ObserveUpstream(source string, elapsed time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.upstreamRequestsTotal.WithLabelValues(source, status).Inc()
	m.upstreamDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// RecordFallback records a reading served from its fallback
func (m *Metrics) RecordFallback(source string) {
	m.fallbacksTotal.WithLabelValues(source).Inc()
}

// ObserveHTTP records one API request
func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Package metrics provides the Prometheus metrics of the export service.
//
// Every Manager owns its own registry, so tests and multiple servers in one
// process never collide on registration.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Export outcomes
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidPayload = "invalid_payload"
	OutcomeSerialization  = "serialization_error"
)

// Manager holds the service metrics.
type Manager struct {
	namespace         string
	latencyBuckets    []float64
	registry          *prometheus.Registry
	processCollectors bool

	exports          *prometheus.CounterVec
	exportDuration   prometheus.Histogram
	documentSize     prometheus.Histogram
	cleanupFailures  prometheus.Counter
	httpRequests     *prometheus.CounterVec
	httpRequestDelay *prometheus.HistogramVec
}

// NewManager creates a metrics manager on a fresh registry unless WithRegistry
// is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "moralreport",
		latencyBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	if m.processCollectors {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	m.exports = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "exports_total",
		Help:      "Total number of export attempts by outcome",
	}, []string{"outcome"})

	m.exportDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "export_duration_seconds",
		Help:      "Time spent decoding, building and serializing a document",
		Buckets:   m.latencyBuckets,
	})

	m.documentSize = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "document_size_bytes",
		Help:      "Size of generated documents",
		Buckets:   prometheus.ExponentialBuckets(4096, 2, 10),
	})

	m.cleanupFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "artifact_cleanup_failures_total",
		Help:      "Temporary document files that could not be removed",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status",
	}, []string{"endpoint", "method", "status"})

	m.httpRequestDelay = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration by endpoint and method",
		Buckets:   m.latencyBuckets,
	}, []string{"endpoint", "method"})
}

// RecordExport records one export attempt
func (m *Manager) RecordExport(outcome string, duration time.Duration, size int) {
	m.exports.WithLabelValues(outcome).Inc()
	m.exportDuration.Observe(duration.Seconds())
	if outcome == OutcomeSuccess {
		m.documentSize.Observe(float64(size))
	}
}

// RecordCleanupFailure counts a temporary file that could not be removed
func (m *Manager) RecordCleanupFailure() {
	m.cleanupFailures.Inc()
}

// RecordHTTPRequest records a served request
func (m *Manager) RecordHTTPRequest(endpoint, method string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(endpoint, method, strconv.Itoa(status)).Inc()
	m.httpRequestDelay.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// Registry returns the registry the metrics live on
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

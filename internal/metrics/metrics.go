// Package metrics exposes Prometheus counters for alignment, offset storage
// and the HTTP API. Every method is safe to call on a nil *Metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for lyricsync.
type Metrics struct {
	registry             *prometheus.Registry
	linesMatchedTotal    prometheus.Counter
	linesSkippedTotal    prometheus.Counter
	recordsRejectedTotal prometheus.Counter
	offsetsSavedTotal    prometheus.Counter
	offsetsEvictedTotal  prometheus.Counter
	storageErrorsTotal   *prometheus.CounterVec
	requestsTotal        prometheus.Counter
	errorsTotal          prometheus.Counter
	cachedOffsets        prometheus.Gauge
}

// New creates and registers Prometheus metrics on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		linesMatchedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lyricsync_lines_matched_total",
			Help: "Lyric lines matched to alignment records",
		}),
		linesSkippedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lyricsync_lines_skipped_total",
			Help: "Lyric lines omitted because they could not be matched",
		}),
		recordsRejectedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lyricsync_records_rejected_total",
			Help: "Malformed alignment records excluded before matching",
		}),
		offsetsSavedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lyricsync_offsets_saved_total",
			Help: "Per-song offsets persisted",
		}),
		offsetsEvictedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lyricsync_offsets_evicted_total",
			Help: "Per-song offsets evicted by the LRU bound",
		}),
		storageErrorsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lyricsync_storage_errors_total",
			Help: "Offset storage failures that fell back to defaults",
		}, []string{"op"}),
		requestsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lyricsync_http_requests_total",
			Help: "Total number of HTTP requests received",
		}),
		errorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "lyricsync_http_errors_total",
			Help: "Total number of HTTP responses with error status (4xx or 5xx)",
		}),
		cachedOffsets: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "lyricsync_cached_offsets",
			Help: "Number of songs with a remembered offset",
		}),
	}

	registry.MustRegister(
		m.linesMatchedTotal,
		m.linesSkippedTotal,
		m.recordsRejectedTotal,
		m.offsetsSavedTotal,
		m.offsetsEvictedTotal,
		m.storageErrorsTotal,
		m.requestsTotal,
		m.errorsTotal,
		m.cachedOffsets,
	)
	return m
}

// AddLinesMatched records matched lyric lines.
func (m *Metrics) AddLinesMatched(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.linesMatchedTotal.Add(float64(n))
}

// AddLinesSkipped records omitted lyric lines.
func (m *Metrics) AddLinesSkipped(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.linesSkippedTotal.Add(float64(n))
}

// AddRecordsRejected records malformed alignment records.
func (m *Metrics) AddRecordsRejected(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.recordsRejectedTotal.Add(float64(n))
}

// IncOffsetsSaved increments the saved offsets counter.
func (m *Metrics) IncOffsetsSaved() {
	if m == nil {
		return
	}
	m.offsetsSavedTotal.Inc()
}

// AddOffsetsEvicted records entries removed by eviction.
func (m *Metrics) AddOffsetsEvicted(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.offsetsEvictedTotal.Add(float64(n))
}

// IncStorageErrors counts a storage failure for the named operation.
func (m *Metrics) IncStorageErrors(op string) {
	if m == nil {
		return
	}
	m.storageErrorsTotal.WithLabelValues(op).Inc()
}

// SetCachedOffsets sets the cached offsets gauge.
func (m *Metrics) SetCachedOffsets(n int) {
	if m == nil {
		return
	}
	m.cachedOffsets.Set(float64(n))
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	if m == nil {
		return
	}
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	if m == nil {
		return
	}
	m.errorsTotal.Inc()
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	inner := promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		inner.ServeHTTP(w, r)
	})
}

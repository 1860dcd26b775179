// Package metrics provides Prometheus metrics for the gridiron ranking service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the ranking builders.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Editor metrics - list mutations, history movement
	listMutations *prometheus.CounterVec
	undoTotal     *prometheus.CounterVec
	redoTotal     *prometheus.CounterVec
	historyDepth  *prometheus.GaugeVec
	listLength    *prometheus.GaugeVec

	// Export metrics
	exportsTotal   *prometheus.CounterVec
	exportDuration prometheus.Histogram
	exportErrors   prometheus.Counter

	// Persistence metrics
	savesCreated *prometheus.CounterVec
	savesDeleted *prometheus.CounterVec
	savedCount   *prometheus.GaugeVec

	// Feed metrics - upstream data sources
	feedFetches   *prometheus.CounterVec
	feedLatency   prometheus.Histogram
	feedFallbacks *prometheus.CounterVec

	// Asset preloader metrics
	logosLoaded  prometheus.Counter
	logosFailed  prometheus.Counter
	preloadReady prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "gridiron",
		subsystem:        "builder",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.listMutations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "list_mutations_total",
		Help:      "Total number of committed ranked-list mutations",
	}, []string{"builder", "op"})

	m.undoTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "undo_total",
		Help:      "Total number of undo operations applied",
	}, []string{"builder"})

	m.redoTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "redo_total",
		Help:      "Total number of redo operations applied",
	}, []string{"builder"})

	m.historyDepth = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_depth",
		Help:      "Current number of snapshots in the undo history",
	}, []string{"builder"})

	m.listLength = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "list_length",
		Help:      "Current number of entries in the ranked list",
	}, []string{"builder"})

	m.exportsTotal = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "exports_total",
		Help:      "Total number of image exports rendered",
	}, []string{"builder"})

	m.exportDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_duration_milliseconds",
		Help:      "Histogram of image export render time in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.exportErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "export_errors_total",
		Help:      "Total number of failed image exports",
	})

	m.savesCreated = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "saves_created_total",
		Help:      "Total number of named rankings saved",
	}, []string{"builder"})

	m.savesDeleted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "saves_deleted_total",
		Help:      "Total number of named rankings deleted",
	}, []string{"builder"})

	m.savedCount = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "saved_rankings",
		Help:      "Current number of stored named rankings",
	}, []string{"builder"})

	m.feedFetches = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_fetches_total",
		Help:      "Total number of upstream feed fetches by outcome",
	}, []string{"source", "outcome"})

	m.feedLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_fetch_latency_milliseconds",
		Help:      "Histogram of upstream feed fetch latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.feedFallbacks = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_fallbacks_total",
		Help:      "Total number of times a bundled fallback dataset was served",
	}, []string{"source"})

	m.logosLoaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "logos_loaded_total",
		Help:      "Total number of logo images successfully preloaded",
	})

	m.logosFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "logos_failed_total",
		Help:      "Total number of logo images that failed to preload",
	})

	m.preloadReady = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "preload_ready",
		Help:      "1 when the logo preloader has completed, 0 otherwise",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordListMutation increments the mutation counter for a builder and op.
func RecordListMutation(builder, op string) {
	globalManager.listMutations.WithLabelValues(builder, op).Inc()
}

// RecordUndo increments the undo counter for a builder.
func RecordUndo(builder string) {
	globalManager.undoTotal.WithLabelValues(builder).Inc()
}

// RecordRedo increments the redo counter for a builder.
func RecordRedo(builder string) {
	globalManager.redoTotal.WithLabelValues(builder).Inc()
}

// UpdateHistoryDepth sets the current undo-history depth for a builder.
func UpdateHistoryDepth(builder string, depth int) {
	globalManager.historyDepth.WithLabelValues(builder).Set(float64(depth))
}

// UpdateListLength sets the current ranked-list length for a builder.
func UpdateListLength(builder string, n int) {
	globalManager.listLength.WithLabelValues(builder).Set(float64(n))
}

// RecordExport increments the export counter for a builder.
func RecordExport(builder string) {
	globalManager.exportsTotal.WithLabelValues(builder).Inc()
}

// RecordExportDuration records export render time in milliseconds.
func RecordExportDuration(latencyMs float64) {
	globalManager.exportDuration.Observe(latencyMs)
}

// RecordExportError increments the failed export counter.
func RecordExportError() {
	globalManager.exportErrors.Inc()
}

// RecordSaveCreated increments the saves-created counter for a builder.
func RecordSaveCreated(builder string) {
	globalManager.savesCreated.WithLabelValues(builder).Inc()
}

// RecordSaveDeleted increments the saves-deleted counter for a builder.
func RecordSaveDeleted(builder string) {
	globalManager.savesDeleted.WithLabelValues(builder).Inc()
}

// UpdateSavedCount sets the stored named-rankings count for a builder.
func UpdateSavedCount(builder string, n int) {
	globalManager.savedCount.WithLabelValues(builder).Set(float64(n))
}

// RecordFeedFetch increments the feed fetch counter for a source and outcome.
func RecordFeedFetch(source, outcome string) {
	globalManager.feedFetches.WithLabelValues(source, outcome).Inc()
}

// RecordFeedLatency records feed fetch latency in milliseconds.
func RecordFeedLatency(latencyMs float64) {
	globalManager.feedLatency.Observe(latencyMs)
}

// RecordFeedFallback increments the fallback counter for a source.
func RecordFeedFallback(source string) {
	globalManager.feedFallbacks.WithLabelValues(source).Inc()
}

// RecordLogoLoaded increments the preloaded-logo counter.
func RecordLogoLoaded() {
	globalManager.logosLoaded.Inc()
}

// RecordLogoFailed increments the failed-logo counter.
func RecordLogoFailed() {
	globalManager.logosFailed.Inc()
}

// UpdatePreloadReady sets the preloader readiness gauge.
func UpdatePreloadReady(ready bool) {
	v := 0.0
	if ready {
		v = 1.0
	}
	globalManager.preloadReady.Set(v)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// UpdateSystemMemoryUsage sets the system memory usage gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by the service.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

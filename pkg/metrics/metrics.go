package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes recorded by RecordFetch.
const (
	OutcomeSuccess = "success"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
)

// Refresh triggers recorded by RecordRefresh.
const (
	TriggerRequest = "request"
	TriggerManual  = "manual"
	TriggerPoller  = "poller"
)

// Namespace prefixes every metric the service exports.
const Namespace = "leetboard"

// httpDurationBuckets are request latency bounds in milliseconds.
var httpDurationBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000} //nolint:gochecknoglobals // fixed bucket layout

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace string
	registry  prometheus.Registerer

	// Sheet fetches
	fetchTotal    *prometheus.CounterVec
	fetchDuration prometheus.Histogram

	// Cache gate
	cacheHits          prometheus.Counter
	cacheMisses        prometheus.Counter
	cacheInvalidations prometheus.Counter
	refreshTotal       *prometheus.CounterVec
	snapshotAge        prometheus.Gauge

	// Normalization
	rowsRetained     prometheus.Gauge
	rowsSkipped      prometheus.Gauge
	snapshotStudents prometheus.Gauge
	snapshotContests prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByType        *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithNamespace(Namespace), WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		registry: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	httpLabels := []string{"endpoint", "method", "status_code"}

	m.fetchTotal = auto.NewCounterVec(
		m.counterOpts("fetch_total", "Sheet fetches by outcome"),
		[]string{"outcome"},
	)
	m.fetchDuration = auto.NewHistogram(m.histogramOpts(
		"fetch_duration_milliseconds", "Sheet fetch and normalize latency in milliseconds",
		[]float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 15000},
	))

	m.cacheHits = auto.NewCounter(m.counterOpts("cache_hits_total", "Reads served from a fresh snapshot"))
	m.cacheMisses = auto.NewCounter(m.counterOpts("cache_misses_total", "Reads that found no fresh snapshot"))
	m.cacheInvalidations = auto.NewCounter(m.counterOpts("cache_invalidations_total", "Explicit snapshot invalidations"))
	m.refreshTotal = auto.NewCounterVec(
		m.counterOpts("refresh_total", "Snapshot refreshes by trigger"),
		[]string{"trigger"},
	)
	m.snapshotAge = auto.NewGauge(m.gaugeOpts("snapshot_age_seconds", "Age of the cached snapshot when last read"))

	m.rowsRetained = auto.NewGauge(m.gaugeOpts("rows_retained", "Data rows kept by the last normalization"))
	m.rowsSkipped = auto.NewGauge(m.gaugeOpts("rows_skipped", "Data rows dropped by the last normalization"))
	m.snapshotStudents = auto.NewGauge(m.gaugeOpts("snapshot_students", "Students in the last snapshot"))
	m.snapshotContests = auto.NewGauge(m.gaugeOpts("snapshot_contests", "Contest columns in the last snapshot"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		httpLabels,
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds", httpDurationBuckets),
		httpLabels,
	)
	m.errorsByType = auto.NewCounterVec(
		m.counterOpts("errors_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts(
		"system_gc_pause_time_milliseconds", "GC pause time in milliseconds",
		[]float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000},
	))
}

// RecordFetch counts one fetch with its outcome and observes its latency.
func RecordFetch(outcome string, latencyMs float64) {
	globalManager.fetchTotal.WithLabelValues(outcome).Inc()
	globalManager.fetchDuration.Observe(latencyMs)
}

// RecordCacheHit increments the cache hit counter.
func RecordCacheHit() {
	globalManager.cacheHits.Inc()
}

// RecordCacheMiss increments the cache miss counter.
func RecordCacheMiss() {
	globalManager.cacheMisses.Inc()
}

// RecordCacheInvalidation increments the invalidation counter.
func RecordCacheInvalidation() {
	globalManager.cacheInvalidations.Inc()
}

// RecordRefresh counts a refresh by what triggered it.
func RecordRefresh(trigger string) {
	globalManager.refreshTotal.WithLabelValues(trigger).Inc()
}

// UpdateSnapshotAge sets the age of the cached snapshot in seconds.
func UpdateSnapshotAge(seconds float64) {
	globalManager.snapshotAge.Set(seconds)
}

// UpdateRowsRetained sets the number of rows the last normalization kept.
func UpdateRowsRetained(n int) {
	globalManager.rowsRetained.Set(float64(n))
}

// UpdateRowsSkipped sets the number of rows the last normalization dropped.
func UpdateRowsSkipped(n int) {
	globalManager.rowsSkipped.Set(float64(n))
}

// UpdateSnapshotSize sets the student and contest counts of the last snapshot.
func UpdateSnapshotSize(students, contests int) {
	globalManager.snapshotStudents.Set(float64(students))
	globalManager.snapshotContests.Set(float64(contests))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

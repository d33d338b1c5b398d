// Package metrics provides Prometheus metrics for the calendar service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the calendar service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	customLabels     map[string]string
	metricPrefix     string
	registry         prometheus.Registerer

	// Store Metrics - The authoritative event collection
	eventsTotal     prometheus.Gauge
	eventAdds       prometheus.Counter
	eventRemoves    prometheus.Counter
	eventReplaces   prometheus.Counter
	duplicateIDs    prometheus.Counter
	rejectedRecords prometheus.Counter

	// Storage Metrics - Persistence bridge writes and loads
	storageSaves        prometheus.Counter
	storageSaveErrors   prometheus.Counter
	storageLoads        prometheus.Counter
	storageLoadErrors   prometheus.Counter
	storagePayloadBytes prometheus.Gauge
	storageSaveLatency  prometheus.Histogram

	// Dialog Metrics - Selection and title dialog flow
	dialogOpens        prometheus.Counter
	dialogCancels      prometheus.Counter
	dialogSubmits      prometheus.Counter
	dialogEmptySubmits prometheus.Counter
	deleteConfirmed    prometheus.Counter
	deleteDeclined     prometheus.Counter

	// Session Metrics - Attached calendar surfaces
	sessionsActive  prometheus.Gauge
	sessionsOpened  prometheus.Counter
	sessionsExpired prometheus.Counter

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Snapshot Metrics - Page capture pipeline
	snapshotCaptures   prometheus.Counter
	snapshotErrors     prometheus.Counter
	snapshotDropped    prometheus.Counter
	snapshotQueueDepth prometheus.Gauge
	snapshotDuration   prometheus.Histogram
	snapshotLastUnix   prometheus.Gauge

	// ICS Metrics - Calendar exchange
	icsExports        prometheus.Counter
	icsImports        prometheus.Counter
	icsImportedEvents prometheus.Counter
	icsSkippedEvents  prometheus.Counter

	// Enhanced Error Metrics - Detailed error tracking
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec

	// System Performance Metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
	serviceUptime        prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "calendar",
		subsystem:        "service",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		metricPrefix:     "",
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // long function required for comprehensive metrics initialization
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Store Metrics
	m.eventsTotal = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_total",
		Help:      "Current number of events in the store",
	})

	m.eventAdds = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_adds_total",
		Help:      "Total number of events added to the store",
	})

	m.eventRemoves = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_removes_total",
		Help:      "Total number of events removed from the store",
	})

	m.eventReplaces = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "event_replacements_total",
		Help:      "Total number of wholesale event set replacements reported by surfaces",
	})

	m.duplicateIDs = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "duplicate_ids_total",
		Help:      "Total number of derived-ID collisions detected (same start and title)",
	})

	m.rejectedRecords = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rejected_records_total",
		Help:      "Total number of incoming event records rejected during coercion",
	})

	// Storage Metrics
	m.storageSaves = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_saves_total",
		Help:      "Total number of full event set writes to the persistence backend",
	})

	m.storageSaveErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_save_errors_total",
		Help:      "Total number of failed persistence writes",
	})

	m.storageLoads = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_loads_total",
		Help:      "Total number of persistence loads",
	})

	m.storageLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_load_errors_total",
		Help:      "Total number of unreadable or malformed persisted payloads",
	})

	m.storagePayloadBytes = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_payload_bytes",
		Help:      "Size in bytes of the last persisted event payload",
	})

	m.storageSaveLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "storage_save_latency_milliseconds",
		Help:      "Persistence write latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	// Dialog Metrics
	m.dialogOpens = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dialog_opens_total",
		Help:      "Total number of title dialogs opened by range selections",
	})

	m.dialogCancels = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dialog_cancels_total",
		Help:      "Total number of title dialogs dismissed without creating an event",
	})

	m.dialogSubmits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dialog_submits_total",
		Help:      "Total number of successful dialog submissions",
	})

	m.dialogEmptySubmits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "dialog_empty_submits_total",
		Help:      "Total number of submissions ignored because the title was empty",
	})

	m.deleteConfirmed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "delete_confirmed_total",
		Help:      "Total number of event deletions confirmed by the user",
	})

	m.deleteDeclined = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "delete_declined_total",
		Help:      "Total number of event deletions declined at the confirmation prompt",
	})

	// Session Metrics
	m.sessionsActive = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_active",
		Help:      "Current number of attached surface sessions",
	})

	m.sessionsOpened = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_opened_total",
		Help:      "Total number of surface sessions opened",
	})

	m.sessionsExpired = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "sessions_expired_total",
		Help:      "Total number of surface sessions reaped after idling out",
	})

	// HTTP Performance Metrics
	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	// Snapshot Metrics
	m.snapshotCaptures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_captures_total",
		Help:      "Total number of calendar page snapshots captured",
	})

	m.snapshotErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_errors_total",
		Help:      "Total number of failed snapshot captures",
	})

	m.snapshotDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_dropped_total",
		Help:      "Total number of snapshot jobs dropped because the queue was full",
	})

	m.snapshotQueueDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_queue_depth",
		Help:      "Current number of queued snapshot jobs",
	})

	m.snapshotDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_duration_milliseconds",
		Help:      "Snapshot capture duration in milliseconds",
		Buckets:   []float64{100, 250, 500, 1000, 2500, 5000, 10000, 30000},
	})

	m.snapshotLastUnix = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "snapshot_last_unix",
		Help:      "Unix timestamp of the last successful snapshot",
	})

	// ICS Metrics
	m.icsExports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ics_exports_total",
		Help:      "Total number of ICS exports served",
	})

	m.icsImports = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ics_imports_total",
		Help:      "Total number of ICS imports processed",
	})

	m.icsImportedEvents = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ics_imported_events_total",
		Help:      "Total number of events created from ICS imports",
	})

	m.icsSkippedEvents = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ics_skipped_events_total",
		Help:      "Total number of ICS components skipped during import",
	})

	// Enhanced Error Metrics
	m.errorRateByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_component_total",
			Help:      "Total number of errors by component",
		},
		[]string{"component", "error_type"},
	)

	m.errorRateByType = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_type_total",
			Help:      "Total number of errors by type",
		},
		[]string{"error_type", "severity"},
	)

	m.errorRateByEndpoint = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_by_endpoint_total",
			Help:      "Total number of errors by endpoint",
		},
		[]string{"endpoint", "method", "error_type"},
	)

	// System Performance Metrics
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})

	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_gc_pause_time_ms",
		Help:      "Average GC pause time in milliseconds",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	m.serviceUptime = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "service_uptime_seconds",
		Help:      "Seconds since the service started",
	})
}

// Store Metrics Functions.

// UpdateEventsTotal sets the current event count.
func UpdateEventsTotal(count int) {
	globalManager.eventsTotal.Set(float64(count))
}

// RecordEventAdd increments the event add counter.
func RecordEventAdd() {
	globalManager.eventAdds.Inc()
}

// RecordEventRemove increments the event remove counter.
func RecordEventRemove() {
	globalManager.eventRemoves.Inc()
}

// RecordEventReplace increments the wholesale replacement counter.
func RecordEventReplace() {
	globalManager.eventReplaces.Inc()
}

// RecordDuplicateID increments the derived-ID collision counter.
func RecordDuplicateID() {
	globalManager.duplicateIDs.Inc()
}

// RecordRejectedRecord increments the rejected record counter.
func RecordRejectedRecord() {
	globalManager.rejectedRecords.Inc()
}

// Storage Metrics Functions.

// RecordStorageSave increments the save counter.
func RecordStorageSave() {
	globalManager.storageSaves.Inc()
}

// RecordStorageSaveError increments the save error counter.
func RecordStorageSaveError() {
	globalManager.storageSaveErrors.Inc()
}

// RecordStorageLoad increments the load counter.
func RecordStorageLoad() {
	globalManager.storageLoads.Inc()
}

// RecordStorageLoadError increments the load error counter.
func RecordStorageLoadError() {
	globalManager.storageLoadErrors.Inc()
}

// UpdateStoragePayloadBytes sets the size of the last persisted payload.
func UpdateStoragePayloadBytes(n int) {
	globalManager.storagePayloadBytes.Set(float64(n))
}

// RecordStorageSaveLatency records persistence write latency in milliseconds.
func RecordStorageSaveLatency(latencyMs float64) {
	globalManager.storageSaveLatency.Observe(latencyMs)
}

// Dialog Metrics Functions.

// RecordDialogOpen increments the dialog open counter.
func RecordDialogOpen() {
	globalManager.dialogOpens.Inc()
}

// RecordDialogCancel increments the dialog cancel counter.
func RecordDialogCancel() {
	globalManager.dialogCancels.Inc()
}

// RecordDialogSubmit increments the successful submission counter.
func RecordDialogSubmit() {
	globalManager.dialogSubmits.Inc()
}

// RecordDialogEmptySubmit increments the ignored empty submission counter.
func RecordDialogEmptySubmit() {
	globalManager.dialogEmptySubmits.Inc()
}

// RecordDeleteConfirmed increments the confirmed deletion counter.
func RecordDeleteConfirmed() {
	globalManager.deleteConfirmed.Inc()
}

// RecordDeleteDeclined increments the declined deletion counter.
func RecordDeleteDeclined() {
	globalManager.deleteDeclined.Inc()
}

// Session Metrics Functions.

// UpdateSessionsActive sets the current attached session count.
func UpdateSessionsActive(count int) {
	globalManager.sessionsActive.Set(float64(count))
}

// RecordSessionOpened increments the opened session counter.
func RecordSessionOpened() {
	globalManager.sessionsOpened.Inc()
}

// RecordSessionExpired increments the expired session counter.
func RecordSessionExpired() {
	globalManager.sessionsExpired.Inc()
}

// HTTP Metrics Functions.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// Snapshot Metrics Functions.

// RecordSnapshotCapture increments the capture counter and stamps the time.
func RecordSnapshotCapture() {
	globalManager.snapshotCaptures.Inc()
	globalManager.snapshotLastUnix.Set(float64(time.Now().Unix()))
}

// RecordSnapshotError increments the capture error counter.
func RecordSnapshotError() {
	globalManager.snapshotErrors.Inc()
}

// RecordSnapshotDropped increments the dropped job counter.
func RecordSnapshotDropped() {
	globalManager.snapshotDropped.Inc()
}

// UpdateSnapshotQueueDepth sets the current queued job count.
func UpdateSnapshotQueueDepth(depth int) {
	globalManager.snapshotQueueDepth.Set(float64(depth))
}

// RecordSnapshotDuration records capture duration in milliseconds.
func RecordSnapshotDuration(latencyMs float64) {
	globalManager.snapshotDuration.Observe(latencyMs)
}

// ICS Metrics Functions.

// RecordICSExport increments the export counter.
func RecordICSExport() {
	globalManager.icsExports.Inc()
}

// RecordICSImport increments the import counter.
func RecordICSImport() {
	globalManager.icsImports.Inc()
}

// RecordICSImportedEvents adds to the imported event counter.
func RecordICSImportedEvents(n int) {
	globalManager.icsImportedEvents.Add(float64(n))
}

// RecordICSSkippedEvents adds to the skipped component counter.
func RecordICSSkippedEvents(n int) {
	globalManager.icsSkippedEvents.Add(float64(n))
}

// Enhanced Error Metrics Functions.

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// System Performance Metrics Functions.

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records an average GC pause observation in milliseconds.
func RecordSystemGCPauseTime(ms float64) {
	globalManager.systemGCPauseTime.Observe(ms)
}

// UpdateServiceUptime sets the service uptime in seconds.
func UpdateServiceUptime(seconds float64) {
	globalManager.serviceUptime.Set(seconds)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package metrics provides Prometheus metrics for the volleyball
// simulation service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Manager owns all Prometheus collectors for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Simulation metrics.
	matchesSimulated  prometheus.Counter
	simulationErrors  prometheus.Counter
	simulationLatency prometheus.Histogram
	ralliesPerSet     prometheus.Histogram
	setsPerMatch      prometheus.Histogram

	// Request handling metrics.
	requestsDuplicate prometheus.Counter

	// Queue metrics.
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueues      prometheus.Counter
	queueDequeues      prometheus.Counter
	queueEnqueueErrors *prometheus.CounterVec

	// Worker and store metrics.
	workerCount   prometheus.Gauge
	storedMatches prometheus.Gauge

	// HTTP metrics.
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Error metrics.
	errorsByComponent *prometheus.CounterVec
	errorsByType      *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec
	errorLatency      *prometheus.HistogramVec

	// System metrics.
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// Default histogram buckets in milliseconds.
var defaultLatencyBuckets = []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500} //nolint:gochecknoglobals // shared default

// NewManager creates a metrics manager and registers all collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "volleysim",
		histogramBuckets: defaultLatencyBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.register()
	return m
}

func (m *Manager) register() {
	factory := func(name, help string) prometheus.CounterOpts {
		return prometheus.CounterOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
	}
	gaugeOpts := func(name, help string) prometheus.GaugeOpts {
		return prometheus.GaugeOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help}
	}
	histOpts := func(name, help string, buckets []float64) prometheus.HistogramOpts {
		return prometheus.HistogramOpts{Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, Buckets: buckets}
	}

	m.matchesSimulated = prometheus.NewCounter(factory("matches_simulated_total", "Matches simulated to completion."))
	m.simulationErrors = prometheus.NewCounter(factory("simulation_errors_total", "Simulations that returned an error."))
	m.simulationLatency = prometheus.NewHistogram(histOpts("simulation_latency_ms", "Wall-clock time of one match simulation.", m.histogramBuckets))
	m.ralliesPerSet = prometheus.NewHistogram(histOpts("rallies_per_set", "Rally count per completed set.", []float64{30, 40, 50, 60, 70, 80, 100}))
	m.setsPerMatch = prometheus.NewHistogram(histOpts("sets_per_match", "Set count per completed match.", []float64{3, 4, 5}))

	m.requestsDuplicate = prometheus.NewCounter(factory("requests_duplicate_total", "Match requests rejected as duplicates."))

	m.queueSize = prometheus.NewGauge(gaugeOpts("queue_size", "Jobs currently queued."))
	m.queueCapacity = prometheus.NewGauge(gaugeOpts("queue_capacity", "Configured queue capacity."))
	m.queueEnqueues = prometheus.NewCounter(factory("queue_enqueues_total", "Successful enqueues."))
	m.queueDequeues = prometheus.NewCounter(factory("queue_dequeues_total", "Successful dequeues."))
	m.queueEnqueueErrors = prometheus.NewCounterVec(factory("queue_enqueue_errors_total", "Failed enqueues by reason."), []string{"reason"})

	m.workerCount = prometheus.NewGauge(gaugeOpts("worker_count", "Configured simulation workers."))
	m.storedMatches = prometheus.NewGauge(gaugeOpts("stored_matches", "Results held in the in-memory store."))

	m.httpRequests = prometheus.NewCounterVec(factory("http_requests_total", "HTTP requests by endpoint, method, and status."), []string{"endpoint", "method", "status"})
	m.httpRequestDuration = prometheus.NewHistogramVec(histOpts("http_request_duration_ms", "HTTP request latency.", m.histogramBuckets), []string{"endpoint", "method", "status"})

	m.errorsByComponent = prometheus.NewCounterVec(factory("errors_by_component_total", "Errors by component and kind."), []string{"component", "kind"})
	m.errorsByType = prometheus.NewCounterVec(factory("errors_by_type_total", "Errors by type and severity."), []string{"type", "severity"})
	m.errorsByEndpoint = prometheus.NewCounterVec(factory("errors_by_endpoint_total", "HTTP errors by endpoint."), []string{"endpoint", "method", "type"})
	m.errorLatency = prometheus.NewHistogramVec(histOpts("error_latency_ms", "Latency of requests that ended in an error.", m.histogramBuckets), []string{"component", "type"})

	m.systemMemoryUsage = prometheus.NewGauge(gaugeOpts("system_memory_bytes", "Allocated heap bytes."))
	m.systemGoroutineCount = prometheus.NewGauge(gaugeOpts("system_goroutines", "Live goroutine count."))
	m.systemGCPauseTime = prometheus.NewHistogram(histOpts("system_gc_pause_ms", "Average GC pause time.", []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10}))

	m.registry.MustRegister(
		m.matchesSimulated, m.simulationErrors, m.simulationLatency,
		m.ralliesPerSet, m.setsPerMatch, m.requestsDuplicate,
		m.queueSize, m.queueCapacity, m.queueEnqueues, m.queueDequeues, m.queueEnqueueErrors,
		m.workerCount, m.storedMatches,
		m.httpRequests, m.httpRequestDuration,
		m.errorsByComponent, m.errorsByType, m.errorsByEndpoint, m.errorLatency,
		m.systemMemoryUsage, m.systemGoroutineCount, m.systemGCPauseTime,
	)
}

// GetRegistry returns the registry backing the global manager, for metric
// exposition handlers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Package-level helpers against the global manager.

// RecordMatchSimulated counts one completed simulation.
func RecordMatchSimulated() { globalManager.matchesSimulated.Inc() }

// RecordSimulationError counts one failed simulation.
func RecordSimulationError() { globalManager.simulationErrors.Inc() }

// RecordSimulationLatency observes one simulation's wall-clock time in ms.
func RecordSimulationLatency(ms float64) { globalManager.simulationLatency.Observe(ms) }

// RecordRalliesPerSet observes the rally count of one completed set.
func RecordRalliesPerSet(rallies int) { globalManager.ralliesPerSet.Observe(float64(rallies)) }

// RecordSetsPerMatch observes the set count of one completed match.
func RecordSetsPerMatch(sets int) { globalManager.setsPerMatch.Observe(float64(sets)) }

// RecordRequestDuplicate counts an idempotency-cache hit.
func RecordRequestDuplicate() { globalManager.requestsDuplicate.Inc() }

// UpdateQueueSize sets the current queue depth.
func UpdateQueueSize(n int) { globalManager.queueSize.Set(float64(n)) }

// UpdateQueueCapacity sets the configured queue capacity.
func UpdateQueueCapacity(n int) { globalManager.queueCapacity.Set(float64(n)) }

// RecordQueueEnqueue counts a successful enqueue.
func RecordQueueEnqueue() { globalManager.queueEnqueues.Inc() }

// RecordQueueDequeue counts a successful dequeue.
func RecordQueueDequeue() { globalManager.queueDequeues.Inc() }

// RecordQueueEnqueueError counts a failed enqueue by reason.
func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(n int) { globalManager.workerCount.Set(float64(n)) }

// UpdateStoredMatches sets the number of stored results.
func UpdateStoredMatches(n int) { globalManager.storedMatches.Set(float64(n)) }

// RecordHTTPRequest counts a finished HTTP request.
func RecordHTTPRequest(endpoint, method, status string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, status).Inc()
}

// RecordHTTPRequestDuration observes one HTTP request's latency in ms.
func RecordHTTPRequestDuration(endpoint, method, status string, ms float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, status).Observe(ms)
}

// RecordErrorByComponent counts an error attributed to a component.
func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}

// RecordErrorByType counts an error by type and severity.
func RecordErrorByType(errType, severity string) {
	globalManager.errorsByType.WithLabelValues(errType, severity).Inc()
}

// RecordErrorByEndpoint counts an HTTP error for an endpoint.
func RecordErrorByEndpoint(endpoint, method, errType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errType).Inc()
}

// RecordErrorLatency observes the latency of a request that failed.
func RecordErrorLatency(component, errType string, ms float64) {
	globalManager.errorLatency.WithLabelValues(component, errType).Observe(ms)
}

// UpdateSystemMemoryUsage sets the allocated heap bytes gauge.
func UpdateSystemMemoryUsage(bytes uint64) { globalManager.systemMemoryUsage.Set(float64(bytes)) }

// UpdateSystemGoroutineCount sets the live goroutine gauge.
func UpdateSystemGoroutineCount(n int) { globalManager.systemGoroutineCount.Set(float64(n)) }

// RecordSystemGCPauseTime observes the average GC pause in ms.
func RecordSystemGCPauseTime(ms float64) { globalManager.systemGCPauseTime.Observe(ms) }

// Package metrics provides Prometheus metrics for the stride service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values shared by several counters.
const (
	OutcomeOK       = "ok"
	OutcomeError    = "error"
	OutcomeFallback = "fallback"
)

// defaultLatencyBuckets are milliseconds; narrative calls sit in the seconds range.
var defaultLatencyBuckets = []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000}

// riskScoreBuckets cover the [0.2, 0.99] range the heuristic can produce.
var riskScoreBuckets = []float64{0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 0.99}

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace      string
	subsystem      string
	latencyBuckets []float64
	constLabels    prometheus.Labels
	registry       prometheus.Registerer

	// Data provider
	providerFetches      *prometheus.CounterVec
	providerFetchLatency *prometheus.HistogramVec

	// Reporting views
	views       *prometheus.CounterVec
	viewLatency *prometheus.HistogramVec

	// Risk scoring
	riskAssessments  *prometheus.CounterVec
	riskScore        prometheus.Histogram
	riskInsufficient prometheus.Counter

	// Narrative gateway
	narrativeRequests *prometheus.CounterVec
	narrativeLatency  *prometheus.HistogramVec

	// Practice-frame critique jobs
	critiqueJobs            *prometheus.CounterVec
	critiqueStored          prometheus.Gauge
	queueSize               prometheus.Gauge
	queueCapacity           prometheus.Gauge
	queueEnqueueErrors      *prometheus.CounterVec
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpErrors          *prometheus.CounterVec

	// Runtime
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics singleton

// customRegistry keeps the default Go collectors out of /healthz.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process-wide registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a Manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:      "stride",
		subsystem:      "reporting",
		latencyBuckets: defaultLatencyBuckets,
		registry:       prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) latencyVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	})
}

func (m *Manager) initializeMetrics() { //nolint:funlen // flat list of collectors
	auto := promauto.With(m.registry)

	m.providerFetches = m.counterVec("provider_fetch_total",
		"Data provider read operations by operation and outcome", "operation", "outcome")
	m.providerFetchLatency = m.latencyVec("provider_fetch_latency_milliseconds",
		"Data provider read latency in milliseconds", "operation")

	m.views = m.counterVec("views_total",
		"Reporting views assembled by view and outcome", "view", "outcome")
	m.viewLatency = m.latencyVec("view_latency_milliseconds",
		"End-to-end fetch, derive and narrate latency per view", "view")

	m.riskAssessments = m.counterVec("risk_assessments_total",
		"Injury risk assessments by risk level", "level")
	m.riskScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "risk_score",
		Help:        "Distribution of computed injury risk scores",
		Buckets:     riskScoreBuckets,
		ConstLabels: m.constLabels,
	})
	m.riskInsufficient = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "risk_insufficient_data_total",
		Help:        "Risk predictions rejected for lack of performance logs",
		ConstLabels: m.constLabels,
	})

	m.narrativeRequests = m.counterVec("narrative_requests_total",
		"Narrative generation requests by kind and outcome (ok or fallback)", "kind", "outcome")
	m.narrativeLatency = m.latencyVec("narrative_latency_milliseconds",
		"Narrative generation latency in milliseconds", "kind")

	m.critiqueJobs = m.counterVec("critique_jobs_total",
		"Practice-frame critique jobs by lifecycle event", "event")
	m.critiqueStored = m.gauge("critique_jobs_stored", "Critique jobs held in the result store")
	m.queueSize = m.gauge("queue_size", "Current number of queued critique jobs")
	m.queueCapacity = m.gauge("queue_capacity", "Maximum number of queued critique jobs")
	m.queueEnqueueErrors = m.counterVec("queue_enqueue_errors_total",
		"Rejected enqueue attempts by reason", "reason")
	m.workerCount = m.gauge("worker_count", "Number of critique workers")
	m.workerProcessingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "worker_processing_latency_milliseconds",
		Help:        "Time a worker spends on one critique job",
		Buckets:     m.latencyBuckets,
		ConstLabels: m.constLabels,
	})

	m.httpRequests = m.counterVec("http_requests_total",
		"HTTP requests by endpoint, method and status code", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.latencyVec("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", "endpoint", "method", "status_code")
	m.httpErrors = m.counterVec("http_errors_total",
		"HTTP error responses by endpoint and error type", "endpoint", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Heap bytes allocated")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Number of goroutines")
	m.systemGCPauseTime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_gc_pause_milliseconds",
		Help:        "Average GC pause in milliseconds",
		Buckets:     []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
		ConstLabels: m.constLabels,
	})
}

// Provider

func RecordProviderFetch(operation, outcome string, latencyMs float64) {
	globalManager.providerFetches.WithLabelValues(operation, outcome).Inc()
	globalManager.providerFetchLatency.WithLabelValues(operation).Observe(latencyMs)
}

// Views

func RecordView(view, outcome string, latencyMs float64) {
	globalManager.views.WithLabelValues(view, outcome).Inc()
	globalManager.viewLatency.WithLabelValues(view).Observe(latencyMs)
}

// Risk

func RecordRiskAssessment(level string, score float64) {
	globalManager.riskAssessments.WithLabelValues(level).Inc()
	globalManager.riskScore.Observe(score)
}

func RecordRiskInsufficientData() {
	globalManager.riskInsufficient.Inc()
}

// Narrative

func RecordNarrative(kind, outcome string, latencyMs float64) {
	globalManager.narrativeRequests.WithLabelValues(kind, outcome).Inc()
	globalManager.narrativeLatency.WithLabelValues(kind).Observe(latencyMs)
}

// Critique jobs

func RecordCritiqueJob(event string) {
	globalManager.critiqueJobs.WithLabelValues(event).Inc()
}

func UpdateCritiqueStored(n int) {
	globalManager.critiqueStored.Set(float64(n))
}

func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

func RecordWorkerProcessingLatency(latencyMs float64) {
	globalManager.workerProcessingLatency.Observe(latencyMs)
}

// HTTP

func RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

func RecordHTTPError(endpoint, errorType string) {
	globalManager.httpErrors.WithLabelValues(endpoint, errorType).Inc()
}

// Runtime

func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the registry behind the package-level helpers.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

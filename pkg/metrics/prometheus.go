// Package metrics exposes Prometheus instrumentation for event emission.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Drop reasons recorded on events_dropped_total.
const (
	ReasonDisabled    = "disabled"
	ReasonClientError = "client_error"
)

// Delivery results recorded on events_delivery_total.
const (
	DeliverySuccess = "success"
	DeliveryFailure = "failure"
)

// Manager owns the Prometheus collectors of the process.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Emission outcomes
	eventsEmitted  *prometheus.CounterVec
	eventsDropped  *prometheus.CounterVec
	eventsDelivery *prometheus.CounterVec
	infraReports   prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Process
	systemMemoryUsage prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // process registry served on /metrics

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "beacon",
		subsystem:        "analytics",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.eventsEmitted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_emitted_total",
		Help:        "Events handed to the ingestion client, by event name",
		ConstLabels: m.constLabels,
	}, []string{"event"})

	m.eventsDropped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_dropped_total",
		Help:        "Events not handed to the ingestion client, by event name and reason",
		ConstLabels: m.constLabels,
	}, []string{"event", "reason"})

	m.eventsDelivery = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "events_delivery_total",
		Help:        "Delivery outcomes reported asynchronously by the ingestion client",
		ConstLabels: m.constLabels,
	}, []string{"result"})

	m.infraReports = auto.NewCounter(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "infra_report_total",
		Help:        "Infrastructure metric reports attempted by the reporter",
		ConstLabels: m.constLabels,
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_requests_total",
		Help:        "Total number of HTTP requests by endpoint and method",
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "http_request_duration_milliseconds",
		Help:        "HTTP request duration in milliseconds",
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}, []string{"endpoint", "method", "status_code"})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        "system_memory_usage_bytes",
		Help:        "Resident memory of the process in bytes, as last sampled",
		ConstLabels: m.constLabels,
	})
}

// RecordEventEmitted counts an event accepted by the ingestion client.
func RecordEventEmitted(event string) {
	globalManager.eventsEmitted.WithLabelValues(event).Inc()
}

// RecordEventDropped counts an event that never reached the ingestion client.
func RecordEventDropped(event, reason string) {
	globalManager.eventsDropped.WithLabelValues(event, reason).Inc()
}

// RecordDelivery counts an asynchronous delivery outcome.
func RecordDelivery(result string) {
	globalManager.eventsDelivery.WithLabelValues(result).Inc()
}

// RecordInfraReport counts one infra metrics report attempt.
func RecordInfraReport() {
	globalManager.infraReports.Inc()
}

// RecordHTTPRequest increments the HTTP request counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateSystemMemoryUsage sets the resident memory gauge in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

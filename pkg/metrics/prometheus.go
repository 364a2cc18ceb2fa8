package metrics

import (
	"fmt"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query outcome labels.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var defaultLatencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250}

// Manager owns the Prometheus collectors of one registry.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         *prometheus.Registry

	// Dataset
	datasetRows         prometheus.Gauge
	datasetLoadDuration prometheus.Histogram
	datasetLoadErrors   prometheus.Counter

	// Queries
	queries              *prometheus.CounterVec
	queryDuration        *prometheus.HistogramVec
	queryErrors          *prometheus.CounterVec
	similarityCandidates prometheus.Histogram

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // process-wide metrics singleton

var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // avoids default Go collectors

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pitchstats",
		subsystem:        "analytics",
		histogramBuckets: defaultLatencyBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.datasetRows = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "dataset_rows",
		Help: "Number of player records in the published table",
	})
	m.datasetLoadDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    "dataset_load_duration_milliseconds",
		Help:    "Time taken to load and publish the player table",
		Buckets: prometheus.ExponentialBuckets(1, 2, 14),
	})
	m.datasetLoadErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "dataset_load_errors_total",
		Help: "Dataset loads that failed",
	})

	m.queries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "queries_total",
		Help: "Analytics queries by query name and outcome",
	}, []string{"query", "status"})
	m.queryDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    "query_duration_milliseconds",
		Help:    "Analytics query latency in milliseconds",
		Buckets: m.histogramBuckets,
	}, []string{"query"})
	m.queryErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "query_errors_total",
		Help: "Failed analytics queries by error kind",
	}, []string{"query", "kind"})
	m.similarityCandidates = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    "similarity_candidates",
		Help:    "Candidate pool size scanned per similarity query",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "system_memory_usage_bytes",
		Help: "Heap bytes allocated",
	})
	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "system_goroutine_count",
		Help: "Number of goroutines",
	})
}

// Registry returns the registry the manager's collectors live on.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// RecordDatasetLoad records a successful load of rows records.
func (m *Manager) RecordDatasetLoad(rows int, durationMs float64) {
	m.datasetRows.Set(float64(rows))
	m.datasetLoadDuration.Observe(durationMs)
}

// RecordDatasetLoadError counts a failed load.
func (m *Manager) RecordDatasetLoadError() { m.datasetLoadErrors.Inc() }

// RecordQuery records one query outcome and its latency.
func (m *Manager) RecordQuery(query, status string, durationMs float64) {
	m.queries.WithLabelValues(query, status).Inc()
	m.queryDuration.WithLabelValues(query).Observe(durationMs)
}

// RecordQueryError counts a failed query by error kind.
func (m *Manager) RecordQueryError(query, kind string) {
	m.queryErrors.WithLabelValues(query, kind).Inc()
}

// RecordSimilarityCandidates records the candidate pool size of a query.
func (m *Manager) RecordSimilarityCandidates(n int) {
	m.similarityCandidates.Observe(float64(n))
}

// UpdateSystem samples memory and goroutine gauges.
func (m *Manager) UpdateSystem() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	m.systemMemoryUsage.Set(float64(ms.Alloc))
	m.systemGoroutineCount.Set(float64(runtime.NumGoroutine()))
}

// WriteTextfile writes the registry in the node-exporter textfile format.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}

// Default returns the process-wide manager.
func Default() *Manager { return globalManager }

// GetRegistry returns the process-wide registry.
func GetRegistry() *prometheus.Registry { return customRegistry }

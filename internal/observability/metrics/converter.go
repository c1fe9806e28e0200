package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// ConverterMetrics contains all Prometheus metrics related to legacy conversion runs.
type ConverterMetrics struct {
	Operations        *prometheus.CounterVec
	OperationDuration *prometheus.HistogramVec
	Errors            *prometheus.CounterVec
	RecordsDecoded    prometheus.Counter
	ListCacheHits     prometheus.Counter
	ListCacheMisses   prometheus.Counter
	SightingsImported prometheus.Counter
	LastSuccess       prometheus.Gauge
	registry          *prometheus.Registry
}

// NewConverterMetrics creates a new instance of ConverterMetrics registered
// with registry.
func NewConverterMetrics(registry *prometheus.Registry) (*ConverterMetrics, error) {
	m := &ConverterMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register converter metrics: %w", err)
	}
	return m, nil
}

// initMetrics initializes all metrics for ConverterMetrics.
func (m *ConverterMetrics) initMetrics() {
	m.Operations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wildlog_operations_total",
		Help: "Total number of converter operations by outcome.",
	}, []string{"operation", "status"})

	m.OperationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wildlog_operation_duration_seconds",
		Help:    "Duration of converter operations in seconds.",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
	}, []string{"operation"})

	m.Errors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "wildlog_errors_total",
		Help: "Total number of converter errors by category.",
	}, []string{"operation", "category"})

	m.RecordsDecoded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wildlog_records_decoded_total",
		Help: "Total number of sighting records decoded from legacy databases.",
	})

	m.ListCacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wildlog_list_cache_hits_total",
		Help: "Total number of list lookups served from the list cache.",
	})

	m.ListCacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wildlog_list_cache_misses_total",
		Help: "Total number of list lookups that read a list file.",
	})

	m.SightingsImported = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wildlog_sightings_imported_total",
		Help: "Total number of sightings added to the sighting store.",
	})

	m.LastSuccess = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "wildlog_last_success_timestamp_seconds",
		Help: "Unix time of the last successful conversion.",
	})
}

// RecordOperation implements Recorder.
func (m *ConverterMetrics) RecordOperation(operation, status string) {
	m.Operations.WithLabelValues(operation, status).Inc()
}

// RecordDuration implements Recorder.
func (m *ConverterMetrics) RecordDuration(operation string, seconds float64) {
	m.OperationDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordError implements Recorder.
func (m *ConverterMetrics) RecordError(operation, errorType string) {
	m.Errors.WithLabelValues(operation, errorType).Inc()
}

// AddRecordsDecoded increases the decoded record counter by n.
func (m *ConverterMetrics) AddRecordsDecoded(n int) {
	m.RecordsDecoded.Add(float64(n))
}

// AddListCacheStats adds list cache hits and misses from one run.
func (m *ConverterMetrics) AddListCacheStats(hits, misses int) {
	m.ListCacheHits.Add(float64(hits))
	m.ListCacheMisses.Add(float64(misses))
}

// AddSightingsImported increases the imported sighting counter by n.
func (m *ConverterMetrics) AddSightingsImported(n int) {
	m.SightingsImported.Add(float64(n))
}

// SetLastSuccess records the Unix time of a successful run.
func (m *ConverterMetrics) SetLastSuccess(unixSeconds float64) {
	m.LastSuccess.Set(unixSeconds)
}

// Collect implements the prometheus.Collector interface.
func (m *ConverterMetrics) Collect(ch chan<- prometheus.Metric) {
	m.Operations.Collect(ch)
	m.OperationDuration.Collect(ch)
	m.Errors.Collect(ch)
	ch <- m.RecordsDecoded
	ch <- m.ListCacheHits
	ch <- m.ListCacheMisses
	ch <- m.SightingsImported
	ch <- m.LastSuccess
}

// Describe implements the prometheus.Collector interface.
func (m *ConverterMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.Operations.Describe(ch)
	m.OperationDuration.Describe(ch)
	m.Errors.Describe(ch)
	ch <- m.RecordsDecoded.Desc()
	ch <- m.ListCacheHits.Desc()
	ch <- m.ListCacheMisses.Desc()
	ch <- m.SightingsImported.Desc()
	ch <- m.LastSuccess.Desc()
}

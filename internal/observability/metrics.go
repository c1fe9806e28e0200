// Package observability provides Prometheus metrics for wildlog runs.
// Metrics are written to a node_exporter textfile after each run.
package observability

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tphakala/wildlog/internal/errors"
	"github.com/tphakala/wildlog/internal/logger"
	"github.com/tphakala/wildlog/internal/observability/metrics"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry  *prometheus.Registry
	Converter *metrics.ConverterMetrics
}

// NewMetrics creates a new instance of Metrics, initializing all metric collectors.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	converterMetrics, err := metrics.NewConverterMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create converter metrics: %w", err)
	}

	return &Metrics{
		registry:  registry,
		Converter: converterMetrics,
	}, nil
}

// Registry returns the registry holding all collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes all metrics in the text exposition format to path.
// The write is atomic, so node_exporter never reads a partial file.
func (m *Metrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.FileError(fmt.Errorf("failed to create metrics directory: %w", err), path)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.FileError(fmt.Errorf("failed to write metrics textfile: %w", err), path)
	}
	log.Debug("metrics textfile written", logger.String("path", path))
	return nil
}

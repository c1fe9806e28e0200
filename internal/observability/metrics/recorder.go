// Package metrics provides custom Prometheus metrics for the wildlog converter.
package metrics

// Recorder defines a minimal interface for recording metrics.
// Components depend on this abstraction rather than concrete metric types.
type Recorder interface {
	// RecordOperation records an operation with its status.
	// The operation parameter describes what was performed (e.g., "convert", "import").
	// The status parameter indicates the outcome (e.g., "success", "error").
	RecordOperation(operation, status string)

	// RecordDuration records the duration of an operation in seconds.
	RecordDuration(operation string, seconds float64)

	// RecordError records an error occurrence with its type.
	// The errorType parameter is an error category such as "truncated-format".
	RecordError(operation, errorType string)
}

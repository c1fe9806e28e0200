// Package logger is wildlog's structured logging layer on top of log/slog.
//
// main builds one CentralLogger from the logging settings and hands out
// module loggers: "legacy" for list and database decoding, "export" for CSV
// writing, "converter" for runs and "datastore" for the sighting store.
//
//	log := centralLogger.Module("legacy")
//	log.Info("list decoded",
//	    logger.String("list", "birds.lst"),
//	    logger.Int("entries", 412))
//
// Console output is plain text on stderr so stdout stays free for command
// results. File output is JSON. Levels can be set per top-level module.
package logger

import (
	"context"
	"time"
	"unique"
)

// LogLevel names a severity in the logging settings.
type LogLevel string

const (
	LogLevelTrace LogLevel = "trace" // per-lookup detail such as list cache hits
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Field is one key/value pair attached to a log line.
type Field struct {
	Key   string
	Value any
}

// internKey interns field keys; the decoders log the same few keys for
// every list and record.
func internKey(key string) string {
	return unique.Make(key).Value()
}

var (
	errorKey   = internKey("error")
	moduleKey  = internKey("module")
	traceIDKey = internKey("trace_id")
)

// Logger is what wildlog components log through. Decoders, the exporter and
// the store receive one instead of reaching for a global.
type Logger interface {
	// Module returns a child logger; "converter" becomes "converter.legacy".
	Module(name string) Logger

	Trace(msg string, fields ...Field)
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)

	// With returns a logger that adds fields to every line, e.g. run_id.
	With(fields ...Field) Logger
	// WithContext adds the trace id stored in ctx, if any.
	WithContext(ctx context.Context) Logger

	Log(level LogLevel, msg string, fields ...Field)

	// Flush writes buffered file output.
	Flush() error
}

// String returns a string field such as a list name or file path.
func String(key, value string) Field {
	return Field{Key: internKey(key), Value: value}
}

// Int returns an int field such as a record count.
func Int(key string, value int) Field {
	return Field{Key: internKey(key), Value: value}
}

// Int64 returns an int64 field such as a byte offset or affected row count.
func Int64(key string, value int64) Field {
	return Field{Key: internKey(key), Value: value}
}

// Error returns the "error" field. A nil err logs a nil value.
//
//	if err := exporter.Write(db, path); err != nil {
//	    log.Error("export failed", logger.Error(err), logger.String("output", path))
//	}
func Error(err error) Field {
	if err == nil {
		return Field{Key: errorKey, Value: nil}
	}
	return Field{Key: errorKey, Value: err.Error()}
}

// Duration returns a duration field, rendered like "1.5s".
func Duration(key string, value time.Duration) Field {
	return Field{Key: internKey(key), Value: value}
}

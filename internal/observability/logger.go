package observability

import "github.com/tphakala/wildlog/internal/logger"

// Package-level cached logger instance.
var log = logger.Global().Module("metrics")

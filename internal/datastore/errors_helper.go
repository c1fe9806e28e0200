// Package datastore provides error handling helpers for database operations
package datastore

import (
	"github.com/tphakala/wildlog/internal/errors"
)

const componentDatastore = "datastore"

// dbError creates a properly categorized database error with context
func dbError(err error, operation string, context ...any) error {
	builder := errors.New(err).
		Component(componentDatastore).
		Category(errors.CategoryDatabase).
		Context("operation", operation)

	// Add context pairs
	for i := 0; i < len(context)-1; i += 2 {
		if key, ok := context[i].(string); ok {
			builder = builder.Context(key, context[i+1])
		}
	}

	return builder.Build()
}

// validationError creates a validation error for bad store input
func validationError(message, field string, value any) error {
	return errors.Newf("%s", message).
		Component(componentDatastore).
		Category(errors.CategoryValidation).
		Context("field", field).
		Context("value", value).
		Build()
}

// conf/validate.go

package conf

import (
	"fmt"
	"os"
	"strings"

	"github.com/tphakala/wildlog/internal/errors"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ErrorCategory marks settings validation failures as configuration errors
func (ve ValidationError) ErrorCategory() errors.ErrorCategory {
	return errors.CategoryConfiguration
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateOutputSettings(&settings.Output); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if settings.Telemetry.Enabled && strings.TrimSpace(settings.Telemetry.DSN) == "" {
		ve.Errors = append(ve.Errors, "telemetry is enabled but telemetry.dsn is empty")
	}

	if len(ve.Errors) > 0 {
		return errors.New(ve).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	return nil
}

// validateOutputSettings checks that at most one sighting store is enabled
// and that the enabled one is usable.
func validateOutputSettings(output *OutputSettings) error {
	if output.SQLite.Enabled && output.MySQL.Enabled {
		return fmt.Errorf("only one of output.sqlite and output.mysql can be enabled")
	}

	if output.SQLite.Enabled && strings.TrimSpace(output.SQLite.Path) == "" {
		return fmt.Errorf("output.sqlite.path is required when SQLite is enabled")
	}

	if output.MySQL.Enabled {
		if output.MySQL.Host == "" || output.MySQL.Database == "" {
			return fmt.Errorf("output.mysql.host and output.mysql.database are required when MySQL is enabled")
		}
		if err := validateEnvPort(output.MySQL.Port); err != nil {
			return fmt.Errorf("output.mysql.port: %w", err)
		}
	}

	return nil
}

// ValidateListsDir checks that the configured lists directory exists and is
// a directory. Only commands that decode legacy files need it.
func ValidateListsDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return errors.New(fmt.Errorf("converter.listsdir is not configured")).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	info, err := os.Stat(dir)
	if err != nil {
		return errors.New(fmt.Errorf("lists directory %s: %w", dir, err)).
			Component("conf").
			Category(errors.CategoryFileIO).
			FileContext(dir).
			Build()
	}
	if !info.IsDir() {
		return errors.New(fmt.Errorf("lists directory %s is not a directory", dir)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			FileContext(dir).
			Build()
	}

	return nil
}

// conf/utils.go various util functions for configuration package
package conf

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/tphakala/wildlog/internal/errors"
)

const osWindows = "windows"

// GetDefaultConfigPaths returns the configuration directories for the current
// operating system. If config.yaml exists in one of them, only that directory
// is returned.
func GetDefaultConfigPaths() ([]string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Context("operation", "get-home-directory").
			Build()
	}

	var configPaths []string
	switch runtime.GOOS {
	case osWindows:
		configPaths = []string{
			filepath.Join(homeDir, "AppData", "Roaming", "wildlog"),
			".",
		}
	default:
		configPaths = []string{
			filepath.Join(homeDir, ".config", "wildlog"),
			".",
		}
	}

	for _, path := range configPaths {
		if _, err := os.Stat(filepath.Join(path, ConfigFileName)); err == nil {
			return []string{path}, nil
		}
	}

	return configPaths, nil
}

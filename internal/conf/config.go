// config.go: settings for the wildlog legacy converter and the functions to load and save them.
package conf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/wildlog/internal/errors"
	"github.com/tphakala/wildlog/internal/logger"
)

// ConfigFileName is the configuration file searched for in the config paths.
const ConfigFileName = "config.yaml"

// ConverterSettings contains settings for legacy database conversion.
type ConverterSettings struct {
	ListsDir string `yaml:"listsdir"` // directory holding the species and location list files
	Output   string `yaml:"output"`   // explicit CSV output path, empty writes next to the source
	Import   bool   `yaml:"import"`   // also add converted records to the sighting store
}

// SQLiteSettings contains settings for the SQLite sighting store.
type SQLiteSettings struct {
	Enabled bool   `yaml:"enabled"` // true to use SQLite
	Path    string `yaml:"path"`    // path to the database file
}

// MySQLSettings contains settings for the MySQL sighting store.
type MySQLSettings struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"` // literal or ${ENV_VAR} reference
	// PasswordFile takes precedence over Password, e.g. /run/secrets/mysql
	PasswordFile string `yaml:"passwordfile"`
	Database     string `yaml:"database"`
}

// OutputSettings selects the sighting store backend.
type OutputSettings struct {
	SQLite SQLiteSettings `yaml:"sqlite"`
	MySQL  MySQLSettings  `yaml:"mysql"`
}

// TelemetrySettings controls optional Sentry error reporting.
type TelemetrySettings struct {
	Enabled bool   `yaml:"enabled"`
	DSN     string `yaml:"dsn"`
}

// MetricsSettings controls the Prometheus textfile written after each run.
type MetricsSettings struct {
	Textfile string `yaml:"textfile"` // node_exporter textfile path, empty disables
}

// Settings contains all configuration options for wildlog.
type Settings struct {
	Debug     bool                 `yaml:"debug"`
	Converter ConverterSettings    `yaml:"converter"`
	Output    OutputSettings       `yaml:"output"`
	Logging   logger.LoggingConfig `yaml:"logging"`
	Telemetry TelemetrySettings    `yaml:"telemetry"`
	Metrics   MetricsSettings      `yaml:"metrics"`
}

// Load reads the configuration file from the default config paths, creating
// a default one when none exists, and applies environment overrides.
func Load() (*Settings, error) {
	configPaths, err := GetDefaultConfigPaths()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, path := range configPaths {
		v.AddConfigPath(path)
	}

	if err := readConfig(v, configPaths[0]); err != nil {
		return nil, err
	}
	return loadFromViper(v)
}

// LoadFile reads settings from an explicit configuration file path.
func LoadFile(configPath string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	setDefaultConfig(v)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.New(fmt.Errorf("error reading config file %s: %w", configPath, err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			FileContext(configPath).
			Build()
	}
	return loadFromViper(v)
}

// readConfig applies defaults and reads the config file, writing a default
// file into defaultDir when no file is found.
func readConfig(v *viper.Viper, defaultDir string) error {
	setDefaultConfig(v)

	err := v.ReadInConfig()
	if err == nil {
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if !errors.As(err, &notFound) {
		return errors.New(fmt.Errorf("fatal error reading config file: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	configPath := filepath.Join(defaultDir, ConfigFileName)
	if err := SaveYAMLConfig(configPath, DefaultSettings()); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Created default config file at:", configPath)
	return v.ReadInConfig()
}

// loadFromViper binds environment variables, unmarshals and validates settings.
func loadFromViper(v *viper.Viper) (*Settings, error) {
	if err := bindEnvVars(v); err != nil {
		return nil, errors.New(err).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, errors.New(fmt.Errorf("error unmarshaling config into struct: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// SaveYAMLConfig writes settings to configPath. The file is written to a
// temporary file in the same directory and renamed into place.
func SaveYAMLConfig(configPath string, settings *Settings) error {
	yamlData, err := yaml.Marshal(settings)
	if err != nil {
		return errors.New(fmt.Errorf("error marshaling settings to YAML: %w", err)).
			Component("conf").
			Category(errors.CategoryConfiguration).
			Build()
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.FileError(fmt.Errorf("error creating config directory %s: %w", dir, err), dir)
	}

	tempFile, err := os.CreateTemp(dir, "config-*.yaml")
	if err != nil {
		return errors.FileError(fmt.Errorf("error creating temporary file: %w", err), dir)
	}
	tempFileName := tempFile.Name()
	defer os.Remove(tempFileName)

	if _, err := tempFile.Write(yamlData); err != nil {
		tempFile.Close()
		return errors.FileError(fmt.Errorf("error writing to temporary file: %w", err), tempFileName)
	}
	if err := tempFile.Close(); err != nil {
		return errors.FileError(fmt.Errorf("error closing temporary file: %w", err), tempFileName)
	}

	if err := os.Rename(tempFileName, configPath); err != nil {
		return errors.FileError(fmt.Errorf("error replacing config file %s: %w", configPath, err), configPath)
	}
	return nil
}

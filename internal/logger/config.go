package logger

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	DefaultLevel string            `yaml:"defaultlevel" json:"default_level"` // default log level for all modules
	Timezone     string            `yaml:"timezone" json:"timezone"`          // "Local", "UTC", or IANA timezone name like "Europe/Helsinki"
	Console      *ConsoleOutput    `yaml:"console" json:"console"`            // console output configuration
	FileOutput   *FileOutput       `yaml:"fileoutput" json:"file_output"`     // file output configuration
	ModuleLevels map[string]string `yaml:"modulelevels" json:"module_levels"` // per-module log levels
}

// ConsoleOutput represents console logging configuration.
// Console output uses human-readable text format without timestamps and is
// written to stderr so command output on stdout stays clean.
type ConsoleOutput struct {
	Enabled bool   `yaml:"enabled" json:"enabled"` // enable console output
	Level   string `yaml:"level" json:"level"`     // log level for console output
}

// FileOutput represents file logging configuration.
// File output uses JSON format with RFC3339 timestamps.
type FileOutput struct {
	Enabled bool   `yaml:"enabled" json:"enabled"` // enable file output
	Path    string `yaml:"path" json:"path"`       // log file path
	Level   string `yaml:"level" json:"level"`     // log level for file output
}

// Default values for logging configuration.
const (
	DefaultLogLevel       = "info"
	DefaultConsoleLevel   = "warn"
	DefaultLogPath        = "logs/wildlog.log"
	DefaultConsoleEnabled = true
	DefaultFileEnabled    = false
)

// DefaultConfig returns the logging configuration used when none is supplied.
func DefaultConfig() *LoggingConfig {
	cfg := &LoggingConfig{}
	applyConfigDefaults(cfg)
	return cfg
}

// applyConfigDefaults applies defaults for nil configuration sections, so
// configs written before a section existed keep working.
func applyConfigDefaults(cfg *LoggingConfig) {
	if cfg == nil {
		return
	}

	if cfg.DefaultLevel == "" {
		cfg.DefaultLevel = DefaultLogLevel
	}

	if cfg.Console == nil {
		cfg.Console = &ConsoleOutput{
			Enabled: DefaultConsoleEnabled,
			Level:   DefaultConsoleLevel,
		}
	}

	if cfg.FileOutput == nil {
		cfg.FileOutput = &FileOutput{
			Enabled: DefaultFileEnabled,
			Path:    DefaultLogPath,
			Level:   DefaultLogLevel,
		}
	}

	if cfg.ModuleLevels == nil {
		cfg.ModuleLevels = make(map[string]string)
	}
}

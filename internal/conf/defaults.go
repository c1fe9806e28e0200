// conf/defaults.go default values for settings
package conf

import (
	"github.com/spf13/viper"

	"github.com/tphakala/wildlog/internal/logger"
)

// Default values shared by the viper defaults and the generated config file.
const (
	DefaultListsDir   = "lists"
	DefaultSQLitePath = "wildlog.db"
	DefaultMySQLPort  = "3306"
)

// setDefaultConfig sets default values for every configuration key.
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("debug", false)

	v.SetDefault("converter.listsdir", DefaultListsDir)
	v.SetDefault("converter.output", "")
	v.SetDefault("converter.import", false)

	v.SetDefault("output.sqlite.enabled", true)
	v.SetDefault("output.sqlite.path", DefaultSQLitePath)

	v.SetDefault("output.mysql.enabled", false)
	v.SetDefault("output.mysql.host", "localhost")
	v.SetDefault("output.mysql.port", DefaultMySQLPort)
	v.SetDefault("output.mysql.username", "wildlog")
	v.SetDefault("output.mysql.password", "")
	v.SetDefault("output.mysql.passwordfile", "")
	v.SetDefault("output.mysql.database", "wildlog")

	v.SetDefault("logging.defaultlevel", logger.DefaultLogLevel)
	v.SetDefault("logging.timezone", "Local")
	v.SetDefault("logging.console.enabled", logger.DefaultConsoleEnabled)
	v.SetDefault("logging.console.level", logger.DefaultConsoleLevel)
	v.SetDefault("logging.fileoutput.enabled", logger.DefaultFileEnabled)
	v.SetDefault("logging.fileoutput.path", logger.DefaultLogPath)
	v.SetDefault("logging.fileoutput.level", logger.DefaultLogLevel)

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.dsn", "")

	v.SetDefault("metrics.textfile", "")
}

// DefaultSettings returns the settings written to a freshly created config file.
func DefaultSettings() *Settings {
	return &Settings{
		Converter: ConverterSettings{
			ListsDir: DefaultListsDir,
		},
		Output: OutputSettings{
			SQLite: SQLiteSettings{Enabled: true, Path: DefaultSQLitePath},
			MySQL: MySQLSettings{
				Host:     "localhost",
				Port:     DefaultMySQLPort,
				Username: "wildlog",
				Database: "wildlog",
			},
		},
		Logging: *logger.DefaultConfig(),
	}
}

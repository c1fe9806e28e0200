package datastore

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/tphakala/wildlog/internal/conf"
	"github.com/tphakala/wildlog/internal/logger"
	"github.com/tphakala/wildlog/internal/privacy"
	"github.com/tphakala/wildlog/internal/secrets"
)

// MySQLStore implements Interface for MySQL
type MySQLStore struct {
	DataStore
	Settings *conf.Settings
}

// mysqlDSN builds the connection string for the configured server.
func mysqlDSN(settings *conf.MySQLSettings, password string) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		settings.Username, password,
		settings.Host, settings.Port,
		settings.Database)
}

// Open connects to the MySQL database and migrates the schema.
func (store *MySQLStore) Open() error {
	mysqlSettings := &store.Settings.Output.MySQL
	password, err := secrets.NewResolver(nil, store.Logger).
		Resolve(mysqlSettings.PasswordFile, mysqlSettings.Password)
	if err != nil {
		return err
	}
	dsn := mysqlDSN(mysqlSettings, password)

	db, err := gorm.Open(mysql.Open(dsn), newGormConfig(store.Logger))
	if err != nil {
		// driver errors may echo the DSN
		err = privacy.WrapError(err)
		store.Logger.Error("failed to open MySQL database",
			logger.String("host", mysqlSettings.Host),
			logger.String("port", mysqlSettings.Port),
			logger.String("database", mysqlSettings.Database),
			logger.Error(err))
		return dbError(fmt.Errorf("failed to open MySQL database: %w", err), "open",
			"host", mysqlSettings.Host, "database", mysqlSettings.Database)
	}

	store.DB = db
	connectionInfo := fmt.Sprintf("%s:%s/%s", mysqlSettings.Host, mysqlSettings.Port, mysqlSettings.Database)
	return performAutoMigration(db, store.Logger, "MySQL", connectionInfo)
}

// Close closes the MySQL connection pool.
func (store *MySQLStore) Close() error {
	return store.closeDB()
}

package datastore

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tphakala/wildlog/internal/logger"
)

// slowQueryThreshold marks queries logged as slow by the gorm adapter.
const slowQueryThreshold = 200 * time.Millisecond

// newGormConfig routes gorm logging through the module logger.
func newGormConfig(log logger.Logger) *gorm.Config {
	return &gorm.Config{
		Logger: logger.NewGormLoggerAdapter(log, slowQueryThreshold),
	}
}

// performAutoMigration creates or updates the sighting store schema.
func performAutoMigration(db *gorm.DB, log logger.Logger, dbType, connectionInfo string) error {
	migrationStart := time.Now()

	if err := db.AutoMigrate(&Category{}, &Species{}, &Location{}, &Sighting{}); err != nil {
		return dbError(fmt.Errorf("failed to auto-migrate %s database: %w", dbType, err), "auto_migrate",
			"db_type", dbType)
	}

	log.Debug("database migration completed",
		logger.String("db_type", dbType),
		logger.String("connection", connectionInfo),
		logger.Duration("total_duration", time.Since(migrationStart)))
	return nil
}

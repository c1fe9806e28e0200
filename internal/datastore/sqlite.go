package datastore

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tphakala/wildlog/internal/conf"
	"github.com/tphakala/wildlog/internal/errors"
)

// SQLiteStore implements Interface for SQLite
type SQLiteStore struct {
	DataStore
	Settings *conf.Settings
}

// Open opens the SQLite database, creating its directory and schema if needed.
func (store *SQLiteStore) Open() error {
	dbPath := store.Settings.Output.SQLite.Path
	if dbPath == "" {
		return validationError("SQLite path is empty", "output.sqlite.path", dbPath)
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.FileError(fmt.Errorf("failed to create database directory: %w", err), dir)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), newGormConfig(store.Logger))
	if err != nil {
		return dbError(fmt.Errorf("failed to open SQLite database: %w", err), "open", "path", dbPath)
	}

	store.DB = db
	return performAutoMigration(db, store.Logger, "SQLite", dbPath)
}

// Close closes the SQLite database.
func (store *SQLiteStore) Close() error {
	return store.closeDB()
}

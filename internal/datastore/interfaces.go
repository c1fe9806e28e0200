// interfaces.go: this code defines the interface for the sighting store operations
package datastore

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tphakala/wildlog/internal/conf"
	"github.com/tphakala/wildlog/internal/logger"
)

// Interface abstracts the underlying database implementation and defines
// the sighting store operations. Identifiers are opaque to callers.
type Interface interface {
	Open() error
	Close() error
	AddSighting(s *NewSighting) (uint, error)
	ImportSightings(sightings []NewSighting) (int, error)
	ListSightings(limit int) ([]Sighting, error)
	Summarise() ([]SpeciesSummary, error)
}

// DataStore implements Interface using a GORM database.
type DataStore struct {
	DB     *gorm.DB
	Logger logger.Logger
}

// New creates a store for the enabled backend, or nil if none is enabled.
func New(settings *conf.Settings, log logger.Logger) Interface {
	if log == nil {
		log = logger.Global().Module(componentDatastore)
	}
	switch {
	case settings.Output.SQLite.Enabled:
		return &SQLiteStore{
			DataStore: DataStore{Logger: log},
			Settings:  settings,
		}
	case settings.Output.MySQL.Enabled:
		return &MySQLStore{
			DataStore: DataStore{Logger: log},
			Settings:  settings,
		}
	default:
		return nil
	}
}

// nameCache remembers identifiers resolved during one transaction.
type nameCache struct {
	categories map[string]uint
	species    map[string]uint
	locations  map[string]uint
}

func newNameCache() *nameCache {
	return &nameCache{
		categories: make(map[string]uint),
		species:    make(map[string]uint),
		locations:  make(map[string]uint),
	}
}

// AddSighting stores one sighting, creating its category, species and
// location on demand, and returns the sighting identifier.
func (ds *DataStore) AddSighting(s *NewSighting) (uint, error) {
	if ds.DB == nil {
		return 0, dbError(fmt.Errorf("database connection is not initialized"), "add_sighting")
	}

	var id uint
	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		id, err = addSighting(tx, newNameCache(), s)
		return err
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// ImportSightings stores all sightings in a single transaction. Either every
// sighting is stored or none is.
func (ds *DataStore) ImportSightings(sightings []NewSighting) (int, error) {
	if ds.DB == nil {
		return 0, dbError(fmt.Errorf("database connection is not initialized"), "import_sightings")
	}

	err := ds.DB.Transaction(func(tx *gorm.DB) error {
		names := newNameCache()
		for i := range sightings {
			if _, err := addSighting(tx, names, &sightings[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	ds.Logger.Info("sightings imported", logger.Int("count", len(sightings)))
	return len(sightings), nil
}

func addSighting(tx *gorm.DB, names *nameCache, s *NewSighting) (uint, error) {
	required := [...]struct{ field, value string }{
		{"category", s.Category},
		{"species", s.Species},
		{"location", s.Location},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return 0, validationError(r.field+" name is required", r.field, r.value)
		}
	}

	categoryID, ok := names.categories[s.Category]
	if !ok {
		category := Category{Name: s.Category}
		if err := tx.Where(Category{Name: s.Category}).FirstOrCreate(&category).Error; err != nil {
			return 0, dbError(fmt.Errorf("resolving category %q: %w", s.Category, err), "resolve_category")
		}
		categoryID = category.ID
		names.categories[s.Category] = categoryID
	}

	speciesKey := s.Category + "\x00" + s.Species
	speciesID, ok := names.species[speciesKey]
	if !ok {
		species := Species{Name: s.Species, CategoryID: categoryID}
		if err := tx.Where(Species{Name: s.Species, CategoryID: categoryID}).FirstOrCreate(&species).Error; err != nil {
			return 0, dbError(fmt.Errorf("resolving species %q: %w", s.Species, err), "resolve_species")
		}
		speciesID = species.ID
		names.species[speciesKey] = speciesID
	}

	locationID, ok := names.locations[s.Location]
	if !ok {
		location := Location{Name: s.Location}
		if err := tx.Where(Location{Name: s.Location}).FirstOrCreate(&location).Error; err != nil {
			return 0, dbError(fmt.Errorf("resolving location %q: %w", s.Location, err), "resolve_location")
		}
		locationID = location.ID
		names.locations[s.Location] = locationID
	}

	sighting := Sighting{
		SpeciesID:  speciesID,
		LocationID: locationID,
		Date:       s.Date,
		Number:     s.Number,
		Flags:      s.Flags,
		Source:     s.Source,
	}
	if err := tx.Omit(clause.Associations).Create(&sighting).Error; err != nil {
		return 0, dbError(fmt.Errorf("saving sighting: %w", err), "save_sighting", "source", s.Source)
	}
	return sighting.ID, nil
}

// ListSightings returns sightings ordered by date, with species, category
// and location loaded. A limit of zero or less returns all sightings.
func (ds *DataStore) ListSightings(limit int) ([]Sighting, error) {
	if ds.DB == nil {
		return nil, dbError(fmt.Errorf("database connection is not initialized"), "list_sightings")
	}

	query := ds.DB.Preload("Species.Category").Preload("Location").Order("date ASC, id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var sightings []Sighting
	if err := query.Find(&sightings).Error; err != nil {
		return nil, dbError(fmt.Errorf("listing sightings: %w", err), "list_sightings")
	}
	return sightings, nil
}

// Summarise returns sighting counts and individual totals per species,
// ordered by category and species name.
func (ds *DataStore) Summarise() ([]SpeciesSummary, error) {
	if ds.DB == nil {
		return nil, dbError(fmt.Errorf("database connection is not initialized"), "summarise")
	}

	var rows []SpeciesSummary
	err := ds.DB.Table("sightings").
		Select("categories.name AS category, species.name AS species, COUNT(sightings.id) AS sightings, COALESCE(SUM(sightings.number), 0) AS total").
		Joins("JOIN species ON species.id = sightings.species_id").
		Joins("JOIN categories ON categories.id = species.category_id").
		Group("categories.name, species.name").
		Order("categories.name ASC, species.name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, dbError(fmt.Errorf("summarising sightings: %w", err), "summarise")
	}
	return rows, nil
}

// closeDB closes the underlying connection pool.
func (ds *DataStore) closeDB() error {
	if ds.DB == nil {
		return nil
	}
	sqlDB, err := ds.DB.DB()
	if err != nil {
		return dbError(fmt.Errorf("failed to get database handle: %w", err), "close")
	}
	if err := sqlDB.Close(); err != nil {
		return dbError(fmt.Errorf("failed to close database: %w", err), "close")
	}
	ds.DB = nil
	return nil
}

// model.go this code defines the data model for the sighting store
package datastore

import "time"

// Category groups species, one per legacy database file naming convention.
type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null;uniqueIndex"`
}

// Species is a named species within a category.
type Species struct {
	ID         uint     `gorm:"primaryKey"`
	Name       string   `gorm:"size:255;not null;uniqueIndex:idx_species_category_name"`
	CategoryID uint     `gorm:"not null;uniqueIndex:idx_species_category_name"`
	Category   Category `gorm:"constraint:OnDelete:CASCADE"`
}

// Location is a named place where sightings are made.
type Location struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:255;not null;uniqueIndex"`
}

// Sighting is one recorded observation.
type Sighting struct {
	ID         uint      `gorm:"primaryKey"`
	SpeciesID  uint      `gorm:"not null;index"`
	Species    Species   `gorm:"constraint:OnDelete:CASCADE"`
	LocationID uint      `gorm:"not null;index"`
	Location   Location  `gorm:"constraint:OnDelete:CASCADE"`
	Date       time.Time `gorm:"index"`
	Number     int
	Flags      int32
	Source     string `gorm:"size:512;index"` // legacy database the sighting was imported from
	CreatedAt  time.Time
}

// TableName overrides the default table name
func (Category) TableName() string { return "categories" }

// TableName overrides the default table name
func (Species) TableName() string { return "species" }

// TableName overrides the default table name
func (Location) TableName() string { return "locations" }

// TableName overrides the default table name
func (Sighting) TableName() string { return "sightings" }

// NewSighting names the category, species and location of a sighting to be
// added. The store resolves names to its own identifiers.
type NewSighting struct {
	Category string
	Species  string
	Location string
	Date     time.Time
	Number   int
	Flags    int32
	Source   string
}

// SpeciesSummary aggregates sightings of one species.
type SpeciesSummary struct {
	Category  string
	Species   string
	Sightings int64
	Total     int64
}

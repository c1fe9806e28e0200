package datastore

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/wildlog/internal/conf"
	"github.com/tphakala/wildlog/internal/errors"
	"github.com/tphakala/wildlog/internal/logger"
)

func createDatabase(t *testing.T) Interface {
	t.Helper()
	settings := conf.DefaultSettings()
	settings.Output.SQLite.Enabled = true
	settings.Output.SQLite.Path = filepath.Join(t.TempDir(), "db", "test.db")

	dataStore := New(settings, logger.NewSlogLogger(io.Discard, logger.LogLevelError, nil))
	require.NotNil(t, dataStore)

	// Attempt to open a database connection.
	require.NoError(t, dataStore.Open(), "Failed to open database")

	// Ensure the database is closed after the test completes.
	t.Cleanup(func() {
		assert.NoError(t, dataStore.Close(), "Failed to close datastore")
	})

	return dataStore
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNew_SelectsBackend(t *testing.T) {
	t.Parallel()

	settings := conf.DefaultSettings()
	assert.IsType(t, &SQLiteStore{}, New(settings, nil))

	settings.Output.SQLite.Enabled = false
	settings.Output.MySQL.Enabled = true
	assert.IsType(t, &MySQLStore{}, New(settings, nil))

	settings.Output.MySQL.Enabled = false
	assert.Nil(t, New(settings, nil))
}

func TestMySQLDSN(t *testing.T) {
	t.Parallel()

	dsn := mysqlDSN(&conf.MySQLSettings{
		Host: "db.local", Port: "3307", Username: "wl", Database: "sightings",
	}, "secret")
	assert.Equal(t, "wl:secret@tcp(db.local:3307)/sightings?charset=utf8mb4&parseTime=True&loc=UTC", dsn)
}

func TestMySQLOpen_MissingPasswordFile(t *testing.T) {
	t.Parallel()

	settings := conf.DefaultSettings()
	settings.Output.SQLite.Enabled = false
	settings.Output.MySQL.Enabled = true
	settings.Output.MySQL.PasswordFile = filepath.Join(t.TempDir(), "mysql-password")

	store := New(settings, logger.NewSlogLogger(io.Discard, logger.LogLevelError, nil))
	err := store.Open()
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryFileIO))
}

func TestImportSightings(t *testing.T) {
	t.Parallel()

	ds := createDatabase(t)

	n, err := ds.ImportSightings([]NewSighting{
		{Category: "Birds", Species: "Robin", Location: "Garden", Date: day(2023, time.July, 4), Number: 3, Source: "1998-Birds.dat"},
		{Category: "Birds", Species: "Wren", Location: "Garden", Date: day(1999, time.December, 31), Number: 1, Flags: 4, Source: "1998-Birds.dat"},
		{Category: "Birds", Species: "Robin", Location: "Heath", Date: day(2001, time.March, 9), Number: 2, Source: "1998-Birds.dat"},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	sightings, err := ds.ListSightings(0)
	require.NoError(t, err)
	require.Len(t, sightings, 3)

	first := sightings[0]
	assert.Equal(t, "Wren", first.Species.Name)
	assert.Equal(t, "Birds", first.Species.Category.Name)
	assert.Equal(t, "Garden", first.Location.Name)
	assert.Equal(t, int32(4), first.Flags)
	assert.True(t, first.Date.Equal(day(1999, time.December, 31)))

	assert.Equal(t, sightings[1].SpeciesID, sightings[2].SpeciesID, "species is created once")

	limited, err := ds.ListSightings(1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestImportSightings_AllOrNothing(t *testing.T) {
	t.Parallel()

	ds := createDatabase(t)

	_, err := ds.ImportSightings([]NewSighting{
		{Category: "Birds", Species: "Robin", Location: "Garden", Date: day(2023, time.July, 4), Number: 3},
		{Category: "Birds", Species: "", Location: "Garden", Date: day(2023, time.July, 5), Number: 1},
	})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryValidation))

	sightings, err := ds.ListSightings(0)
	require.NoError(t, err)
	assert.Empty(t, sightings)
}

func TestAddSighting_ReusesNames(t *testing.T) {
	t.Parallel()

	ds := createDatabase(t)

	id1, err := ds.AddSighting(&NewSighting{Category: "Mammals", Species: "Badger", Location: "Wood", Date: day(2020, time.May, 1), Number: 1})
	require.NoError(t, err)
	id2, err := ds.AddSighting(&NewSighting{Category: "Mammals", Species: "Badger", Location: "Wood", Date: day(2020, time.May, 2), Number: 2})
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)

	sightings, err := ds.ListSightings(0)
	require.NoError(t, err)
	require.Len(t, sightings, 2)
	assert.Equal(t, sightings[0].SpeciesID, sightings[1].SpeciesID)
	assert.Equal(t, sightings[0].LocationID, sightings[1].LocationID)
}

func TestSummarise(t *testing.T) {
	t.Parallel()

	ds := createDatabase(t)

	empty, err := ds.Summarise()
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ds.ImportSightings([]NewSighting{
		{Category: "Birds", Species: "Wren", Location: "Garden", Date: day(2023, time.July, 4), Number: 1},
		{Category: "Birds", Species: "Robin", Location: "Garden", Date: day(2023, time.July, 4), Number: 3},
		{Category: "Birds", Species: "Robin", Location: "Heath", Date: day(2023, time.July, 5), Number: 2},
		{Category: "Mammals", Species: "Badger", Location: "Wood", Date: day(2020, time.May, 1), Number: 1},
	})
	require.NoError(t, err)

	summary, err := ds.Summarise()
	require.NoError(t, err)
	assert.Equal(t, []SpeciesSummary{
		{Category: "Birds", Species: "Robin", Sightings: 2, Total: 5},
		{Category: "Birds", Species: "Wren", Sightings: 1, Total: 1},
		{Category: "Mammals", Species: "Badger", Sightings: 1, Total: 1},
	}, summary)
}

func TestClosedStore(t *testing.T) {
	t.Parallel()

	ds := &DataStore{Logger: logger.NewSlogLogger(io.Discard, logger.LogLevelError, nil)}
	_, err := ds.ImportSightings(nil)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryDatabase))

	_, err = ds.Summarise()
	require.Error(t, err)
	assert.NoError(t, ds.closeDB())
}

//go:build integration

package datastore

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/tphakala/wildlog/internal/conf"
	"github.com/tphakala/wildlog/internal/logger"
)

const mysqlImage = "mysql:8.4"

// startMySQL runs a throwaway MySQL server and returns settings pointing at
// it. The password is passed through a secret file.
func startMySQL(t *testing.T) *conf.Settings {
	t.Helper()
	ctx := t.Context()

	container, err := tcmysql.Run(ctx, mysqlImage,
		tcmysql.WithDatabase("wildlog"),
		tcmysql.WithUsername("wildlog"),
		tcmysql.WithPassword("integration"),
	)
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("failed to terminate MySQL container: %v", err)
		}
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "3306/tcp")
	require.NoError(t, err)

	passwordFile := filepath.Join(t.TempDir(), "mysql-password")
	require.NoError(t, os.WriteFile(passwordFile, []byte("integration\n"), 0o600))

	settings := conf.DefaultSettings()
	settings.Output.SQLite.Enabled = false
	settings.Output.MySQL = conf.MySQLSettings{
		Enabled:      true,
		Host:         host,
		Port:         port.Port(),
		Username:     "wildlog",
		PasswordFile: passwordFile,
		Database:     "wildlog",
	}
	return settings
}

func TestMySQLStore_ImportAndSummarise(t *testing.T) {
	settings := startMySQL(t)

	store := New(settings, logger.NewSlogLogger(io.Discard, logger.LogLevelError, nil))
	require.IsType(t, &MySQLStore{}, store)
	require.NoError(t, store.Open())
	t.Cleanup(func() { assert.NoError(t, store.Close()) })

	n, err := store.ImportSightings([]NewSighting{
		{Category: "Birds", Species: "Robin", Location: "Garden", Date: day(2023, time.July, 4), Number: 3, Source: "1998-Birds.dat"},
		{Category: "Birds", Species: "Robin", Location: "Heath", Date: day(2023, time.July, 5), Number: 2, Source: "1998-Birds.dat"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	summary, err := store.Summarise()
	require.NoError(t, err)
	assert.Equal(t, []SpeciesSummary{{Category: "Birds", Species: "Robin", Sightings: 2, Total: 5}}, summary)

	sightings, err := store.ListSightings(0)
	require.NoError(t, err)
	require.Len(t, sightings, 2)
	assert.Equal(t, "Garden", sightings[0].Location.Name)
	assert.Equal(t, "Birds", sightings[0].Species.Category.Name)
}

// Package testutil provides shared test utilities for the wildlog project.
// The builders here synthesize legacy list and database files byte for byte.
package testutil

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// Legacy layout widths.
const (
	TagSize      = 80
	InfoPathSize = 1024
	TitleSize    = len("Species Database") + 1
	ListPathSize = 1024
	RecordSize   = 18
)

// ListEntry describes one entry written by ListFile.
type ListEntry struct {
	Index    int32
	Tag      string
	InfoPath string
}

// Record describes one sighting written by DatabaseFile.
type Record struct {
	SpeciesID  int32
	LocationID int32
	PackedDate int32
	Number     int16
	Flags      int32
}

// padded returns s as a NUL-padded block of width n. Longer strings are cut.
func padded(s string, n int) []byte {
	b := make([]byte, n)
	copy(b, s)
	return b
}

func writeLE(buf *bytes.Buffer, v any) {
	// bytes.Buffer writes never fail
	_ = binary.Write(buf, binary.LittleEndian, v)
}

// ListFile builds a list file. Info paths are written only when version > 100.
func ListFile(version int32, entries ...ListEntry) []byte {
	var buf bytes.Buffer
	writeLE(&buf, version)
	for _, e := range entries {
		writeLE(&buf, e.Index)
		buf.Write(padded(e.Tag, TagSize))
		if version > 100 {
			buf.Write(padded(e.InfoPath, InfoPathSize))
		}
	}
	return buf.Bytes()
}

// DatabaseFile builds a database file whose header names the two list paths
// verbatim, typically DOS paths such as `C:\WILDLOG\BIRDS.LST`.
func DatabaseFile(version int32, speciesPath, locationPath string, records ...Record) []byte {
	var buf bytes.Buffer
	writeLE(&buf, version)
	buf.Write(padded("Species Database", TitleSize))
	buf.Write(padded(speciesPath, ListPathSize))
	buf.Write(padded(locationPath, ListPathSize))
	for _, r := range records {
		writeLE(&buf, r.SpeciesID)
		writeLE(&buf, r.LocationID)
		writeLE(&buf, r.PackedDate)
		writeLE(&buf, r.Number)
		writeLE(&buf, r.Flags)
	}
	return buf.Bytes()
}

// WriteFile writes data to path on fs, creating parent directories.
func WriteFile(t *testing.T, fs afero.Fs, path string, data []byte) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, data, 0o644))
}

// BirdsFixture writes the two-record birds corpus to fs under root and
// returns the database path and lists directory. Species 1 is Robin and
// 2 is Wren; location 1 is Garden.
func BirdsFixture(t *testing.T, fs afero.Fs, root string) (dbPath, listsDir string) {
	t.Helper()
	listsDir = filepath.Join(root, "lists")
	WriteFile(t, fs, filepath.Join(listsDir, "birds.lst"), ListFile(1,
		ListEntry{Index: 1, Tag: "Robin"},
		ListEntry{Index: 2, Tag: "Wren"},
	))
	WriteFile(t, fs, filepath.Join(listsDir, "sites.lst"), ListFile(1,
		ListEntry{Index: 1, Tag: "Garden"},
	))

	dbPath = filepath.Join(root, "1998-Birds.dat")
	WriteFile(t, fs, dbPath, DatabaseFile(1, `C:\WILDLOG\BIRDS.LST`, `C:\WILDLOG\SITES.LST`,
		Record{SpeciesID: 1, LocationID: 1, PackedDate: 20230704, Number: 3},
		Record{SpeciesID: 2, LocationID: 1, PackedDate: 19991231, Number: 1, Flags: 4},
	))
	return dbPath, listsDir
}

// CountingFs wraps an afero.Fs and counts Open calls per path.
type CountingFs struct {
	afero.Fs
	opens map[string]int
}

// NewCountingFs wraps fs.
func NewCountingFs(fs afero.Fs) *CountingFs {
	return &CountingFs{Fs: fs, opens: make(map[string]int)}
}

// Open records the call and delegates.
func (c *CountingFs) Open(name string) (afero.File, error) {
	c.opens[name]++
	return c.Fs.Open(name)
}

// Opens returns how many times name was opened.
func (c *CountingFs) Opens(name string) int {
	return c.opens[name]
}

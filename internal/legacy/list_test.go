package legacy

import (
	"io"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/wildlog/internal/errors"
	"github.com/tphakala/wildlog/internal/logger"
	"github.com/tphakala/wildlog/internal/testutil"
)

func discardLogger() logger.Logger {
	return logger.NewSlogLogger(io.Discard, logger.LogLevelError, nil)
}

func TestDecodeList_RoundTrip(t *testing.T) {
	t.Parallel()

	entries := []testutil.ListEntry{
		{Index: 1, Tag: "Robin", InfoPath: `c:\wildlog\info\robin.txt`},
		{Index: 2, Tag: "Wren", InfoPath: `c:\wildlog\info\wren.txt`},
		{Index: 40, Tag: "Blue Tit"},
	}

	tests := []struct {
		name      string
		version   int32
		entrySize int
		withInfo  bool
	}{
		{"version 1", 1, listEntrySize, false},
		{"version 100", 100, listEntrySize, false},
		{"version 101", 101, listEntryInfoSize, true},
		{"version 200", 200, listEntryInfoSize, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			data := testutil.ListFile(tt.version, entries...)
			require.Len(t, data, listHeaderSize+tt.entrySize*len(entries))

			list, err := DecodeList("birds.lst", data)
			require.NoError(t, err)
			assert.Equal(t, tt.version, list.Version)
			assert.Equal(t, "birds.lst", list.Name)
			require.Len(t, list.Entries, len(entries))

			for i, want := range entries {
				got := list.Entries[i]
				assert.Equal(t, want.Index, got.Index)
				assert.Equal(t, want.Tag, got.Tag)
				if tt.withInfo {
					assert.Equal(t, want.InfoPath, got.InfoPath)
				} else {
					assert.Empty(t, got.InfoPath)
				}
			}
		})
	}
}

func TestDecodeList_Empty(t *testing.T) {
	t.Parallel()

	list, err := DecodeList("empty.lst", testutil.ListFile(1))
	require.NoError(t, err)
	assert.Empty(t, list.Entries)

	_, found := list.Lookup(1)
	assert.False(t, found)
}

func TestDecodeList_Truncated(t *testing.T) {
	t.Parallel()

	full := testutil.ListFile(101,
		testutil.ListEntry{Index: 1, Tag: "Robin"},
		testutil.ListEntry{Index: 2, Tag: "Wren"},
	)

	tests := []struct {
		name       string
		data       []byte
		wantOffset int64
	}{
		{"no version", []byte{1, 0}, 0},
		{"missing info path", full[:listHeaderSize+listEntrySize], listHeaderSize},
		{"second entry cut", full[:len(full)-1], listHeaderSize + listEntryInfoSize},
		{"stray bytes after entries", append(testutil.ListFile(1, testutil.ListEntry{Index: 1, Tag: "Robin"}), 0, 0), listHeaderSize + listEntrySize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := DecodeList("birds.lst", tt.data)
			require.Error(t, err)
			assert.True(t, errors.IsCategory(err, errors.CategoryTruncatedFormat))

			var ee *errors.EnhancedError
			require.True(t, errors.As(err, &ee))
			assert.Equal(t, tt.wantOffset, ee.GetContext()["offset"])
			assert.Equal(t, "birds.lst", ee.GetContext()["path"])
		})
	}
}

func TestListLookup_FirstEntryWins(t *testing.T) {
	t.Parallel()

	list, err := DecodeList("sites.lst", testutil.ListFile(1,
		testutil.ListEntry{Index: 7, Tag: "Garden"},
		testutil.ListEntry{Index: 3, Tag: "Pond"},
		testutil.ListEntry{Index: 7, Tag: "Orchard"},
	))
	require.NoError(t, err)
	require.Len(t, list.Entries, 3)

	entry, found := list.Lookup(7)
	require.True(t, found)
	assert.Equal(t, "Garden", entry.Tag)

	_, found = list.Lookup(5)
	assert.False(t, found)
}

func TestListDecoder_CachesByBaseName(t *testing.T) {
	t.Parallel()

	fs := testutil.NewCountingFs(afero.NewMemMapFs())
	data := testutil.ListFile(1, testutil.ListEntry{Index: 1, Tag: "Robin"})
	testutil.WriteFile(t, fs, "/a/birds.lst", data)
	testutil.WriteFile(t, fs, "/b/birds.lst", testutil.ListFile(1, testutil.ListEntry{Index: 1, Tag: "Other"}))

	decoder := NewListDecoder(fs, discardLogger())

	first, err := decoder.Get("/a/birds.lst")
	require.NoError(t, err)
	second, err := decoder.Get("/a/birds.lst")
	require.NoError(t, err)
	third, err := decoder.Get("/b/birds.lst")
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Same(t, first, third, "same base name is the same list")
	assert.Equal(t, 1, fs.Opens("/a/birds.lst"))
	assert.Equal(t, 0, fs.Opens("/b/birds.lst"))
	assert.Equal(t, CacheStats{Hits: 2, Misses: 1}, decoder.Stats())
}

func TestListDecoder_MissingFile(t *testing.T) {
	t.Parallel()

	decoder := NewListDecoder(afero.NewMemMapFs(), discardLogger())
	_, err := decoder.Get("/lists/missing.lst")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryFileIO))
	assert.Contains(t, err.Error(), "/lists/missing.lst")

	// failures are not cached
	assert.Equal(t, CacheStats{Misses: 1}, decoder.Stats())
	_, err = decoder.Get("/lists/missing.lst")
	require.Error(t, err)
	assert.Equal(t, CacheStats{Misses: 2}, decoder.Stats())
}

package privacy

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrubMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			"url query",
			"Error at https://api.example.com?api_key=secret123&token=abc",
			"Error at https://api.example.com?[REDACTED]",
		},
		{
			"unix home",
			"open /home/alice/birds/1998-Birds.dat: no such file",
			"open /home/[USER]/birds/1998-Birds.dat: no such file",
		},
		{
			"macos home",
			"open /Users/carol/lists/sites.lst: permission denied",
			"open /Users/[USER]/lists/sites.lst: permission denied",
		},
		{
			"windows profile",
			`list C:\Users\Bob\lists\birds.lst missing`,
			`list C:\Users\[USER]\lists\birds.lst missing`,
		},
		{
			"mysql dsn",
			"dial wildlog:secret@tcp(db:3306)/wildlog failed",
			"dial [CREDENTIALS]@tcp(db:3306)/wildlog failed",
		},
		{
			"nothing to scrub",
			"unknown species index 7 in birds.lst",
			"unknown species index 7 in birds.lst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, ScrubMessage(tt.input))
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, WrapError(nil))

	orig := &fs.PathError{Op: "open", Path: "/home/alice/1998-Birds.dat", Err: fs.ErrNotExist}
	wrapped := WrapError(orig)
	require.Error(t, wrapped)
	assert.Equal(t, "open /home/[USER]/1998-Birds.dat: file does not exist", wrapped.Error())
	require.ErrorIs(t, wrapped, fs.ErrNotExist)

	var pathErr *fs.PathError
	require.True(t, errors.As(wrapped, &pathErr))
	assert.Equal(t, "/home/alice/1998-Birds.dat", pathErr.Path)
}

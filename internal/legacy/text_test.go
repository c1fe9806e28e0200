package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastPathComponent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dos path", `c:\wildlog\lists\birds.lst`, "birds.lst"},
		{"no separator", "birds.lst", "birds.lst"},
		{"trailing separator", `c:\wildlog\`, ""},
		{"forward slashes are not separators", "c:/wildlog/birds.lst", "c:/wildlog/birds.lst"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, LastPathComponent(tt.in))
		})
	}
}

func TestDecodeText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Robin", decodeText([]byte("Robin\x00\x00\x00")))
	assert.Equal(t, "", decodeText(make([]byte, 80)))
	assert.Equal(t, "Grünfink", decodeText([]byte{'G', 'r', 0xFC, 'n', 'f', 'i', 'n', 'k', 0}))
	assert.Equal(t, "a\x00b", decodeText([]byte("a\x00b\x00")), "only trailing padding is trimmed")
}

func TestListFileName(t *testing.T) {
	t.Parallel()

	block := make([]byte, listPathSize)
	copy(block, `C:\WILDLOG\BIRDS.LST`)
	assert.Equal(t, "birds.lst", listFileName(block))
}

func TestCategoryName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1998-Birds.dat", "Birds"},
		{"2023Mammals.dat", "Mammals"},
		{"Reptiles", "Reptiles"},
		{"/data/legacy/1999-Sea Birds-2.dat", "Sea Birds"},
		{"Moths.db", "Moths"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CategoryName(tt.in))
		})
	}
}

package legacy

import (
	"path/filepath"
	"strings"
	"unicode"
)

// CategoryName derives a category label from a database file name by
// dropping the extension and every digit and hyphen, so "1998-Birds.dat"
// becomes "Birds". Case and inner spacing are kept.
func CategoryName(filePath string) string {
	base := filepath.Base(filePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsDigit(r) {
			return -1
		}
		return r
	}, base)
}

package legacy

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// trimPadding removes the trailing NUL bytes that pad fixed-width text blocks.
func trimPadding(b []byte) []byte {
	return bytes.TrimRight(b, "\x00")
}

// decodeText converts a padded Windows-1252 block to a UTF-8 string.
func decodeText(b []byte) string {
	b = trimPadding(b)
	if len(b) == 0 {
		return ""
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		// Windows-1252 maps every byte, so this only happens on a broken decoder.
		return string(b)
	}
	return string(decoded)
}

// LastPathComponent returns the part of a DOS path after the last backslash,
// or the whole string when it contains none.
func LastPathComponent(dosPath string) string {
	for i := len(dosPath) - 1; i >= 0; i-- {
		if dosPath[i] == '\\' {
			return dosPath[i+1:]
		}
	}
	return dosPath
}

// listFileName extracts the lower-cased list file name from an embedded path block.
func listFileName(block []byte) string {
	return LastPathComponent(strings.ToLower(decodeText(block)))
}

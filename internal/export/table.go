package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/tphakala/wildlog/internal/legacy"
)

// WriteListTable writes the entries of a decoded list as tab-separated
// lines: index, tag and info path.
func WriteListTable(w io.Writer, list *legacy.List) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "# %s version %d, %d entries\n", list.Name, list.Version, len(list.Entries)); err != nil {
		return err
	}
	for _, e := range list.Entries {
		if _, err := fmt.Fprintf(bw, "%d\t%s\t%s\n", e.Index, e.Tag, e.InfoPath); err != nil {
			return fmt.Errorf("failed to write list entry %d: %w", e.Index, err)
		}
	}

	return bw.Flush()
}

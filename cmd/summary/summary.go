package summary

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tphakala/wildlog/internal/config"
	"github.com/tphakala/wildlog/internal/datastore"
)

// Command creates the summary command, which prints sighting totals per
// species from the sighting store.
func Command(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarise sightings in the sighting store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.OpenStore()
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			rows, err := store.Summarise()
			if err != nil {
				return err
			}
			return writeSummary(cmd.OutOrStdout(), rows)
		},
	}

	return cmd
}

// writeSummary prints rows as an aligned table.
func writeSummary(w io.Writer, rows []datastore.SpeciesSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tSPECIES\tSIGHTINGS\tTOTAL")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", r.Category, r.Species, r.Sightings, r.Total)
	}
	return tw.Flush()
}

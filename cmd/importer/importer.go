package importer

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/wildlog/internal/config"
	"github.com/tphakala/wildlog/internal/converter"
	"github.com/tphakala/wildlog/internal/logger"
)

// Command creates the import command, which adds the sightings of a legacy
// database to the sighting store without writing a CSV.
func Command(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [database file]",
		Short: "Import a legacy sighting database into the sighting store",
		Long: `Import a legacy sighting database into the sighting store.

Categories, species and locations are created by name as needed. The import
runs in a single transaction: either every sighting is stored or none is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}

			conv, closeStore, err := ctx.NewConverter(true)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			result, err := conv.Run(cmd.Context(), args[0], converter.Options{
				ListsDir: ctx.Settings.Converter.ListsDir,
				SkipCSV:  true,
				Import:   true,
			})
			if metricsErr := ctx.WriteMetrics(); metricsErr != nil {
				ctx.Module("import").Warn("failed to write metrics textfile", logger.Error(metricsErr))
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d records imported\n", result.Imported)
			return nil
		},
	}

	return cmd
}

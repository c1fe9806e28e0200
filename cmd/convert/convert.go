package convert

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tphakala/wildlog/internal/config"
	"github.com/tphakala/wildlog/internal/converter"
	"github.com/tphakala/wildlog/internal/logger"
)

// Command creates the convert command for converting a single legacy database.
func Command(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [database file]",
		Short: "Convert a legacy sighting database to CSV",
		Long: `Convert a legacy sighting database to CSV.

List files named in the database header are read from converter.listsdir.
The CSV is written next to the database unless converter.output is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return run(cmd, ctx, args[0])
		},
	}

	return cmd
}

func run(cmd *cobra.Command, ctx *config.Context, dbPath string) error {
	settings := ctx.Settings.Converter

	conv, closeStore, err := ctx.NewConverter(settings.Import)
	if err != nil {
		return err
	}
	defer func() { _ = closeStore() }()

	result, err := conv.Run(cmd.Context(), dbPath, converter.Options{
		ListsDir:   settings.ListsDir,
		OutputPath: settings.Output,
		Import:     settings.Import,
	})
	if metricsErr := ctx.WriteMetrics(); metricsErr != nil {
		ctx.Module("convert").Warn("failed to write metrics textfile", logger.Error(metricsErr))
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.String())
	return nil
}

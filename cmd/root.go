package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/wildlog/cmd/convert"
	"github.com/tphakala/wildlog/cmd/importer"
	"github.com/tphakala/wildlog/cmd/lists"
	"github.com/tphakala/wildlog/cmd/summary"
	"github.com/tphakala/wildlog/internal/config"
)

// RootCommand creates and returns the root command
func RootCommand(ctx *config.Context) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wildlog",
		Short:         "Wildlife sighting log converter",
		Long:          "Converts legacy wildlife sighting databases to CSV and into the sighting store.",
		Version:       ctx.BuildInfo.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add sub-commands to the root command.
	subcommands := []*cobra.Command{
		convert.Command(ctx),
		importer.Command(ctx),
		lists.Command(ctx),
		summary.Command(ctx),
	}

	rootCmd.AddCommand(subcommands...)

	return rootCmd
}

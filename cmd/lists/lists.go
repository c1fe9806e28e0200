package lists

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/wildlog/internal/config"
	"github.com/tphakala/wildlog/internal/export"
	"github.com/tphakala/wildlog/internal/legacy"
)

// Command creates the lists command for inspecting a legacy list file.
func Command(ctx *config.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists [list file]",
		Short: "Print the entries of a legacy species or location list",
		Long:  `Decode a legacy list file and print its entries as tab-separated index, tag and info path.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}

			decoder := legacy.NewListDecoder(nil, ctx.Module("legacy"))
			list, err := decoder.Get(args[0])
			if err != nil {
				return err
			}
			return export.WriteListTable(cmd.OutOrStdout(), list)
		},
	}

	return cmd
}

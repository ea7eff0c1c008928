package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (commit %s, built %s)\n", AppName, r.info.Version, r.info.Commit, r.info.Date)
			return nil
		},
	}
}

package cli

import (
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/mchmarny/sidenav/pkg/mcptools"
)

func newMCPCommand(r *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the navigation tools to an MCP client over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			site, err := r.site(cmd.Context())
			if err != nil {
				return err
			}

			tools, err := mcptools.New(site)
			if err != nil {
				return err
			}
			defer func() {
				if err := tools.Close(); err != nil {
					slog.Error("failed to close search index", "error", err)
				}
			}()

			// stdout carries the protocol; logs stay on stderr
			slog.Info("serving MCP over stdio", "version", r.info.Version)
			return tools.NewServer(r.info.Version).Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

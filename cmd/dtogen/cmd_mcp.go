package main

import (
	"github.com/spf13/cobra"

	"github.com/strogmv/dtogen/internal/mcp"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP server on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return mcp.Serve(cmd.Context(), a.pipeline)
		},
	}
}

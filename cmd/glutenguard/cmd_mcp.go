package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shahar-caura/glutenguard/internal/tool"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run as an MCP server over stdio",
		Long: `Expose classify_ingredients, check_barcode and search_dish as MCP tools.
Logs go to stderr so stdout stays reserved for the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.wire()
			if err != nil {
				return err
			}
			defer func() { _ = svc.Close() }()

			a.logger.Info("mcp server starting", "transport", "stdio", "phrases_version", svc.Checker.PhrasesVersion())
			return tool.NewServer(svc.Checker, version).Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}

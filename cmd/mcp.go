package cmd

import (
	"github.com/huangsam/bikedash/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp [data-path]",
	Short: "Start the bikedash MCP server",
	Long:  `Launch an MCP server that allows AI agents to query the rental dashboard via standard tools.`,
	Args:  cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Handlers suppress the normal header logs
		// to avoid polluting stdio which is used for the protocol.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, datasetLoader, cacheManager)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

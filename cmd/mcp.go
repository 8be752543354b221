package cmd

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/drift-labs/sdkdoc/internal/mcp"
	"github.com/drift-labs/sdkdoc/internal/sdkdoc"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve SDK symbol lookups as an MCP server over stdio",
	Run:   runMCP,
}

func runMCP(cmd *cobra.Command, args []string) {
	server := mcp.NewServer(sdkdoc.NewFromConfig(mustLoadConfig()), Version)

	errCh := make(chan error)
	go func() { errCh <- server.Run() }()

	if err := waitForSignal(errCh); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

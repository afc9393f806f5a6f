package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfenderov/docscan/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server",
	Long: `Start the MCP server.

The server communicates via stdio and provides these tools:
  - scan_document: Scan a document against the owner's earlier uploads
  - get_document: Get a scanned document with its matches
  - search_documents: Full-text search (requires elasticsearch.enabled)

Example:
  docscan mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	ctx := context.Background()

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	engine, esClient, err := newEngine(ctx, store)
	if err != nil {
		return err
	}

	var searcher mcp.Searcher
	if esClient != nil {
		searcher = esClient
	}

	server, err := mcp.NewServer(mcp.Config{
		Name:           cfg.MCP.Name,
		Version:        cfg.MCP.Version,
		MaxUploadBytes: cfg.Server.MaxUploadBytes,
	}, engine, searcher)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Starting MCP server...")

	return server.ServeStdio()
}

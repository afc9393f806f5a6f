package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	searchEmail  string
	searchLimit  int
	searchFormat string
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search an account's scanned documents",
	Long: `Full-text search over the documents an account has scanned.
Requires elasticsearch.enabled.

Examples:
  # Basic search
  docscan search "consensus" --email ann@example.com

  # Limit results
  docscan search "consensus" --email ann@example.com --limit 5

  # JSON output for scripting
  docscan search "consensus" --email ann@example.com --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchEmail, "email", "", "Account email (required)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Maximum number of results")
	searchCmd.Flags().StringVar(&searchFormat, "format", "text", "Output format: text or json")
	searchCmd.MarkFlagRequired("email")
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	query := args[0]

	esClient, err := newSearchClient(ctx)
	if err != nil {
		return err
	}
	if esClient == nil {
		return fmt.Errorf("search is disabled - set elasticsearch.enabled")
	}

	docs, err := esClient.Search(ctx, searchEmail, query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if len(docs) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	if searchFormat == "json" {
		output, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Found %d results:\n\n", len(docs))
	for i, doc := range docs {
		fmt.Printf("─── Result %d ───\n", i+1)
		fmt.Printf("File:    %s\n", doc.FileName)
		fmt.Printf("ID:      %d\n", doc.ID)
		fmt.Printf("Scanned: %s\n", doc.ScanDate.Format("2006-01-02"))

		// Truncate content for display
		content := []rune(doc.Content)
		if len(content) > 500 {
			content = append(content[:500], []rune("...")...)
		}
		fmt.Printf("Content:\n%s\n\n", string(content))
	}

	return nil
}

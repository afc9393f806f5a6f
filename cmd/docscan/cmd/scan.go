package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mfenderov/docscan/internal/upload"
)

var (
	scanEmail  string
	scanFormat string
)

var scanCmd = &cobra.Command{
	Use:   "scan [file]",
	Short: "Scan a local text file",
	Long: `Scan a local plain-text file for an account. The scan costs one credit
and compares the file with the account's earlier documents.

Examples:
  docscan scan essay.txt --email ann@example.com
  docscan scan essay.txt --email ann@example.com --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().StringVar(&scanEmail, "email", "", "Account email (required)")
	scanCmd.Flags().StringVar(&scanFormat, "format", "text", "Output format: text or json")
	scanCmd.MarkFlagRequired("email")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	name := filepath.Base(path)
	content, err := upload.Read(name, "", f, GetConfig().Server.MaxUploadBytes)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	engine, _, err := newEngine(ctx, store)
	if err != nil {
		return err
	}

	result, err := engine.Scan(ctx, scanEmail, name, content)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if scanFormat == "json" {
		output, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Scanned %s as document %d\n", result.FileName, result.DocumentID)
	fmt.Printf("  Compared: %d\n", result.Compared)
	fmt.Printf("  Remaining credits: %d\n", result.RemainingCredits)

	if len(result.Matches) == 0 {
		fmt.Println("\nNo similar documents found.")
	}
	for i, m := range result.Matches {
		fmt.Printf("\n─── Match %d ───\n", i+1)
		fmt.Printf("Document:   %d (%s)\n", m.DocumentID, m.FileName)
		fmt.Printf("Similarity: %d%%\n", m.Percentage)
		for _, topic := range m.CommonTopics {
			fmt.Printf("Topic:      %s\n", topic)
		}
		for _, p := range m.MatchingPassages {
			fmt.Printf("  > %s\n", p)
		}
	}

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings: %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	return nil
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mfenderov/docscan/internal/highlight"
	"github.com/mfenderov/docscan/internal/scan"
)

var (
	showEmail string
	showHTML  bool
	showJSON  bool
)

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a scanned document with its matches",
	Long: `Show a scanned document, its recorded matches, and its body with the
matching passages marked.

Examples:
  docscan show 12 --email ann@example.com
  docscan show 12 --email ann@example.com --html > doc.html`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().StringVar(&showEmail, "email", "", "Account email (required)")
	showCmd.Flags().BoolVar(&showHTML, "html", false, "Print the highlighted HTML body only")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the document view as JSON")
	showCmd.MarkFlagRequired("email")
}

func runShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid document id %q", args[0])
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	view, err := scan.New(store, store, nil, nil).View(context.Background(), id, showEmail)
	if err != nil {
		return err
	}

	switch {
	case showHTML:
		fmt.Println(view.Highlighted)
		return nil
	case showJSON:
		output, err := json.MarshalIndent(view, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(output))
		return nil
	}

	fmt.Printf("Document %d: %s\n", view.ID, view.FileName)
	fmt.Printf("Scanned:  %s\n", view.ScanDate.Format("2006-01-02 15:04:05"))
	fmt.Printf("Matches:  %d\n\n", len(view.Matches))
	for _, m := range view.Matches {
		fmt.Printf("  %3d%%  %d (%s)\n", m.Percentage, m.DocumentID, m.FileName)
	}

	var passages []string
	for _, m := range view.Matches {
		passages = append(passages, m.MatchingPassages...)
	}
	fmt.Printf("\n%s\n", highlight.Render(view.Content, passages, highlight.Marker{Open: "[[", Close: "]]"}))

	return nil
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfenderov/docscan/internal/credits"
)

var creditsCmd = &cobra.Command{
	Use:   "credits",
	Short: "Manage credit balances",
}

var creditsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset every balance to the default",
	Long: `Reset every account balance to credits.default_balance once, the same
operation the server runs on its schedule.

Example:
  docscan credits reset`,
	RunE: runCreditsReset,
}

func init() {
	rootCmd.AddCommand(creditsCmd)
	creditsCmd.AddCommand(creditsResetCmd)
}

func runCreditsReset(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	balance := GetConfig().Credits.DefaultBalance
	n, err := credits.NewResetter(store, balance).ResetAll(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("Reset %d accounts to %d credits\n", n, balance)
	return nil
}

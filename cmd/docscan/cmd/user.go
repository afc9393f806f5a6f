package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mfenderov/docscan/pkg/models"
)

var (
	userEmail   string
	userName    string
	userCredits int
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage accounts",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an account",
	Long: `Create an account that can scan documents.

Example:
  docscan user create --email ann@example.com --name ann`,
	RunE: runUserCreate,
}

var userShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show an account, its balance and its archived uploads",
	RunE:  runUserShow,
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd, userShowCmd)

	userCreateCmd.Flags().StringVar(&userEmail, "email", "", "Account email (required)")
	userCreateCmd.Flags().StringVar(&userName, "name", "", "Display name")
	userCreateCmd.Flags().IntVar(&userCredits, "credits", 0, "Starting balance (default credits.default_balance)")
	userCreateCmd.MarkFlagRequired("email")

	userShowCmd.Flags().StringVar(&userEmail, "email", "", "Account email (required)")
	userShowCmd.MarkFlagRequired("email")
}

func runUserCreate(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	credits := userCredits
	if !cmd.Flags().Changed("credits") {
		credits = GetConfig().Credits.DefaultBalance
	}

	account, err := store.CreateAccount(context.Background(), models.Account{
		Email:    userEmail,
		Username: userName,
		Credits:  credits,
	})
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	fmt.Printf("Created account %s with %d credits\n", account.Email, account.Credits)
	return nil
}

func runUserShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	account, err := store.GetAccount(ctx, userEmail)
	if err != nil {
		return fmt.Errorf("failed to load account %s: %w", userEmail, err)
	}

	fmt.Printf("Email:    %s\n", account.Email)
	fmt.Printf("Name:     %s\n", account.Username)
	fmt.Printf("Credits:  %d\n", account.Credits)
	fmt.Printf("Created:  %s\n", account.CreatedAt.Format("2006-01-02"))

	storageClient, err := newStorageClient(ctx)
	if err != nil {
		return err
	}
	if storageClient == nil {
		return nil
	}

	uploads, err := storageClient.ListUploads(ctx, account.Email)
	if err != nil {
		return fmt.Errorf("failed to list archived uploads: %w", err)
	}
	fmt.Printf("Archived: %d\n", len(uploads))
	for _, name := range uploads {
		fmt.Printf("  - %s\n", name)
	}
	return nil
}

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mfenderov/docscan/pkg/models"
)

// CreateAccount stores a new account. The email must not be registered yet.
func (s *Store) CreateAccount(ctx context.Context, account models.Account) (*models.Account, error) {
	if account.Email == "" {
		return nil, fmt.Errorf("%w: email is required", models.ErrInvalidInput)
	}
	if account.Credits < 0 {
		return nil, fmt.Errorf("%w: credits must not be negative", models.ErrInvalidInput)
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM accounts WHERE email = ?", account.Email).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking account: %w", err)
		}
		if exists > 0 {
			return fmt.Errorf("%w: account %s already exists", models.ErrInvalidInput, account.Email)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO accounts (email, username, credits, created_at)
			VALUES (?, ?, ?, ?)
		`, account.Email, account.Username, account.Credits, account.CreatedAt)
		if err != nil {
			return fmt.Errorf("inserting account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetAccount retrieves an account by email.
func (s *Store) GetAccount(ctx context.Context, email string) (*models.Account, error) {
	var a models.Account
	err := s.db.QueryRowContext(ctx, `
		SELECT email, username, credits, created_at FROM accounts WHERE email = ?
	`, email).Scan(&a.Email, &a.Username, &a.Credits, &a.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning account: %w", err)
	}
	return &a, nil
}

// Balance returns the current credit balance of an account.
func (s *Store) Balance(ctx context.Context, email string) (int, error) {
	var credits int
	err := s.db.QueryRowContext(ctx, "SELECT credits FROM accounts WHERE email = ?", email).Scan(&credits)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, models.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("reading balance: %w", err)
	}
	return credits, nil
}

// ResetCredits sets every account's balance to balance and returns how many were updated.
func (s *Store) ResetCredits(ctx context.Context, balance int) (int64, error) {
	if balance < 0 {
		return 0, fmt.Errorf("%w: balance must not be negative", models.ErrInvalidInput)
	}
	res, err := s.db.ExecContext(ctx, "UPDATE accounts SET credits = ?", balance)
	if err != nil {
		return 0, fmt.Errorf("resetting credits: %w", err)
	}
	return res.RowsAffected()
}

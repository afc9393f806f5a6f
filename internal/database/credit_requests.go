package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mfenderov/docscan/pkg/models"
)

const creditRequestColumns = `
	cr.id, cr.email, COALESCE(a.username, ''), cr.credits, cr.approved_credits,
	cr.reason, cr.status, COALESCE(cr.rejection_reason, ''), cr.request_date`

// SubmitCreditRequest records a pending request for additional credits.
func (s *Store) SubmitCreditRequest(ctx context.Context, email string, credits int, reason string) (*models.CreditRequest, error) {
	if credits <= 0 {
		return nil, fmt.Errorf("%w: requested credits must be positive", models.ErrInvalidInput)
	}
	if _, err := s.GetAccount(ctx, email); err != nil {
		return nil, err
	}

	req := &models.CreditRequest{
		Email:       email,
		Credits:     credits,
		Reason:      reason,
		Status:      models.CreditRequestPending,
		RequestDate: time.Now().UTC(),
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO credit_requests (email, credits, reason, status, request_date)
		VALUES (?, ?, ?, ?, ?)
	`, req.Email, req.Credits, req.Reason, string(req.Status), req.RequestDate)
	if err != nil {
		return nil, fmt.Errorf("inserting credit request: %w", err)
	}
	if req.ID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("reading credit request id: %w", err)
	}
	return req, nil
}

// GetCreditRequest retrieves a credit request by id.
func (s *Store) GetCreditRequest(ctx context.Context, id int64) (*models.CreditRequest, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+creditRequestColumns+`
		FROM credit_requests cr LEFT JOIN accounts a ON a.email = cr.email
		WHERE cr.id = ?`, id)
	req, err := scanCreditRequest(row)
	if err != nil {
		return nil, notFound(err, "scanning credit request")
	}
	return req, nil
}

// ListCreditRequests returns the account's requests, newest first.
func (s *Store) ListCreditRequests(ctx context.Context, email string) ([]models.CreditRequest, error) {
	return s.queryCreditRequests(ctx, `SELECT `+creditRequestColumns+`
		FROM credit_requests cr LEFT JOIN accounts a ON a.email = cr.email
		WHERE cr.email = ?
		ORDER BY cr.request_date DESC, cr.id DESC`, email)
}

// ListAllCreditRequests returns every request, newest first.
func (s *Store) ListAllCreditRequests(ctx context.Context) ([]models.CreditRequest, error) {
	return s.queryCreditRequests(ctx, `SELECT `+creditRequestColumns+`
		FROM credit_requests cr LEFT JOIN accounts a ON a.email = cr.email
		ORDER BY cr.request_date DESC, cr.id DESC`)
}

// DecideCreditRequest approves or rejects a pending request. Approval credits the
// account with approvedCredits in the same transaction.
func (s *Store) DecideCreditRequest(ctx context.Context, id int64, status models.CreditRequestStatus, approvedCredits int, rejectionReason string) error {
	switch status {
	case models.CreditRequestApproved:
		if approvedCredits <= 0 {
			return fmt.Errorf("%w: approved credits must be positive", models.ErrInvalidInput)
		}
	case models.CreditRequestRejected:
	default:
		return fmt.Errorf("%w: unknown action %q", models.ErrInvalidInput, status)
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var email, current string
		err := tx.QueryRowContext(ctx, "SELECT email, status FROM credit_requests WHERE id = ?", id).Scan(&email, &current)
		if err != nil {
			return notFound(err, "reading credit request")
		}
		if models.CreditRequestStatus(current) != models.CreditRequestPending {
			return fmt.Errorf("%w: request %d is already %s", models.ErrInvalidInput, id, current)
		}

		if status == models.CreditRequestApproved {
			_, err = tx.ExecContext(ctx, `
				UPDATE credit_requests SET status = ?, approved_credits = ?, rejection_reason = NULL
				WHERE id = ?
			`, string(status), approvedCredits, id)
			if err != nil {
				return fmt.Errorf("approving credit request: %w", err)
			}
			if _, err := tx.ExecContext(ctx, "UPDATE accounts SET credits = credits + ? WHERE email = ?", approvedCredits, email); err != nil {
				return fmt.Errorf("crediting account: %w", err)
			}
			return nil
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE credit_requests SET status = ?, approved_credits = NULL, rejection_reason = ?
			WHERE id = ?
		`, string(status), rejectionReason, id)
		if err != nil {
			return fmt.Errorf("rejecting credit request: %w", err)
		}
		return nil
	})
}

func (s *Store) queryCreditRequests(ctx context.Context, query string, args ...any) ([]models.CreditRequest, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing credit requests: %w", err)
	}
	defer rows.Close()

	requests := []models.CreditRequest{}
	for rows.Next() {
		req, err := scanCreditRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning credit request: %w", err)
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCreditRequest(row rowScanner) (*models.CreditRequest, error) {
	var req models.CreditRequest
	var status string
	var approved sql.NullInt64
	if err := row.Scan(&req.ID, &req.Email, &req.Username, &req.Credits, &approved,
		&req.Reason, &status, &req.RejectionReason, &req.RequestDate); err != nil {
		return nil, err
	}
	req.Status = models.CreditRequestStatus(status)
	if approved.Valid {
		n := int(approved.Int64)
		req.ApprovedCredits = &n
	}
	return &req, nil
}

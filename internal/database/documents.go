package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mfenderov/docscan/pkg/models"
)

// CreateDocument charges the owner one credit and stores the document in a single
// transaction. The balance is checked and decremented by the same conditional update,
// so it never goes negative and concurrent scans cannot both spend the last credit.
// It returns the stored document and the owner's remaining balance.
func (s *Store) CreateDocument(ctx context.Context, owner, fileName, content string) (*models.Document, int, error) {
	doc := &models.Document{
		Owner:       owner,
		FileName:    fileName,
		Content:     content,
		ScanDate:    time.Now().UTC(),
		CreditsUsed: models.CreditCost,
	}
	var remaining int

	err := s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE accounts SET credits = credits - ?
			WHERE email = ? AND credits >= ?
		`, models.CreditCost, owner, models.CreditCost)
		if err != nil {
			return fmt.Errorf("charging credit: %w", err)
		}
		charged, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("charging credit: %w", err)
		}
		if charged == 0 {
			var credits int
			err := tx.QueryRowContext(ctx, "SELECT credits FROM accounts WHERE email = ?", owner).Scan(&credits)
			if errors.Is(err, sql.ErrNoRows) {
				return models.ErrNotFound
			}
			if err != nil {
				return fmt.Errorf("reading balance: %w", err)
			}
			return models.ErrInsufficientCredit
		}

		res, err = tx.ExecContext(ctx, `
			INSERT INTO documents (owner, file_name, content, scan_date, credits_used)
			VALUES (?, ?, ?, ?, ?)
		`, doc.Owner, doc.FileName, doc.Content, doc.ScanDate, doc.CreditsUsed)
		if err != nil {
			return fmt.Errorf("inserting document: %w", err)
		}
		if doc.ID, err = res.LastInsertId(); err != nil {
			return fmt.Errorf("reading document id: %w", err)
		}

		return tx.QueryRowContext(ctx, "SELECT credits FROM accounts WHERE email = ?", owner).Scan(&remaining)
	})
	if err != nil {
		return nil, 0, err
	}

	return doc, remaining, nil
}

// GetDocument retrieves a document by id.
func (s *Store) GetDocument(ctx context.Context, id int64) (*models.Document, error) {
	var d models.Document
	err := s.db.QueryRowContext(ctx, `
		SELECT id, owner, file_name, content, scan_date, credits_used
		FROM documents WHERE id = ?
	`, id).Scan(&d.ID, &d.Owner, &d.FileName, &d.Content, &d.ScanDate, &d.CreditsUsed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning document: %w", err)
	}
	return &d, nil
}

// ListDocumentRefs returns the owner's documents other than exclude, oldest first.
func (s *Store) ListDocumentRefs(ctx context.Context, owner string, exclude int64) ([]models.DocumentRef, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, file_name FROM documents
		WHERE owner = ? AND id != ?
		ORDER BY id
	`, owner, exclude)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var refs []models.DocumentRef
	for rows.Next() {
		var r models.DocumentRef
		if err := rows.Scan(&r.ID, &r.FileName); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		refs = append(refs, r)
	}
	return refs, rows.Err()
}

// DocumentContent loads the body of a stored document.
func (s *Store) DocumentContent(ctx context.Context, id int64) (string, error) {
	var content sql.NullString
	err := s.db.QueryRowContext(ctx, "SELECT content FROM documents WHERE id = ?", id).Scan(&content)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: document %d: %w", models.ErrUnreadableDocument, id, models.ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("%w: document %d: %w", models.ErrUnreadableDocument, id, err)
	}
	if !content.Valid {
		return "", fmt.Errorf("%w: document %d has no content", models.ErrUnreadableDocument, id)
	}
	return content.String, nil
}

// History lists the owner's documents newest first, each with the number of
// similarity records it takes part in.
func (s *Store) History(ctx context.Context, owner string) ([]models.HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.file_name, d.scan_date,
			(SELECT COUNT(*) FROM document_similarity ds
			 WHERE ds.document_id1 = d.id OR ds.document_id2 = d.id) AS match_count
		FROM documents d
		WHERE d.owner = ?
		ORDER BY d.scan_date DESC, d.id DESC
	`, owner)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	entries := []models.HistoryEntry{}
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.DocumentID, &e.FileName, &e.ScanDate, &e.MatchCount); err != nil {
			return nil, fmt.Errorf("scanning history: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

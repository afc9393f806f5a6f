package database

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mfenderov/docscan/pkg/models"
)

// UpsertIfAbsent stores the record for an unordered document pair unless one already
// exists. The pair is put in canonical order first, so (3, 7) and (7, 3) address the
// same row. It reports whether a new row was written.
func (s *Store) UpsertIfAbsent(ctx context.Context, record models.SimilarityRecord) (bool, error) {
	if record.DocumentID1 == record.DocumentID2 {
		return false, fmt.Errorf("%w: a document cannot be paired with itself", models.ErrInvalidInput)
	}
	record = models.NewSimilarityRecord(record.DocumentID1, record.DocumentID2, record.Percentage, record.MatchingPassages)

	passages, err := json.Marshal(record.MatchingPassages)
	if err != nil {
		return false, fmt.Errorf("marshalling passages: %w", err)
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO document_similarity
			(document_id1, document_id2, similarity_percentage, matching_passages)
		VALUES (?, ?, ?, ?)
	`, record.DocumentID1, record.DocumentID2, float64(record.Percentage), string(passages))
	if err != nil {
		return false, fmt.Errorf("inserting similarity: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("inserting similarity: %w", err)
	}
	return n > 0, nil
}

// GetSimilarity returns the record for a pair in either order.
func (s *Store) GetSimilarity(ctx context.Context, a, b int64) (*models.SimilarityRecord, error) {
	id1, id2 := models.CanonicalPair(a, b)

	var pct float64
	var passages string
	err := s.db.QueryRowContext(ctx, `
		SELECT similarity_percentage, matching_passages FROM document_similarity
		WHERE document_id1 = ? AND document_id2 = ?
	`, id1, id2).Scan(&pct, &passages)
	if err != nil {
		return nil, notFound(err, "scanning similarity")
	}

	record := models.NewSimilarityRecord(id1, id2, int(math.Round(pct)), nil)
	if err := json.Unmarshal([]byte(passages), &record.MatchingPassages); err != nil {
		return nil, fmt.Errorf("unmarshalling passages: %w", err)
	}
	return &record, nil
}

// FindAllForDocument returns every record the document takes part in, joined with the
// peer document's file name. Order is unspecified.
func (s *Store) FindAllForDocument(ctx context.Context, id int64) ([]models.Match, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT d.id, d.file_name, ds.similarity_percentage, ds.matching_passages
		FROM document_similarity ds
		JOIN documents d ON d.id = CASE WHEN ds.document_id1 = ? THEN ds.document_id2 ELSE ds.document_id1 END
		WHERE ds.document_id1 = ? OR ds.document_id2 = ?
	`, id, id, id)
	if err != nil {
		return nil, fmt.Errorf("querying similarities: %w", err)
	}
	defer rows.Close()

	matches := []models.Match{}
	for rows.Next() {
		var m models.Match
		var pct float64
		var passages string
		if err := rows.Scan(&m.DocumentID, &m.FileName, &pct, &passages); err != nil {
			return nil, fmt.Errorf("scanning similarity: %w", err)
		}
		m.Percentage = int(math.Round(pct))
		if err := json.Unmarshal([]byte(passages), &m.MatchingPassages); err != nil {
			return nil, fmt.Errorf("unmarshalling passages for document %d: %w", m.DocumentID, err)
		}
		if m.MatchingPassages == nil {
			m.MatchingPassages = []string{}
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

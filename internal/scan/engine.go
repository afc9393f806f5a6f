// Package scan runs a newly uploaded document against its owner's corpus and
// assembles the stored view of a document.
package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/mfenderov/docscan/internal/highlight"
	"github.com/mfenderov/docscan/internal/similarity"
	"github.com/mfenderov/docscan/pkg/models"
)

// Stage is a step of the scan pipeline.
type Stage string

const (
	StageUploaded  Stage = "uploaded"
	StageCompared  Stage = "compared"
	StagePersisted Stage = "persisted"
	StageReported  Stage = "reported"
)

// Repository stores documents and charges credits.
type Repository interface {
	CreateDocument(ctx context.Context, owner, fileName, content string) (*models.Document, int, error)
	GetDocument(ctx context.Context, id int64) (*models.Document, error)
	ListDocumentRefs(ctx context.Context, owner string, exclude int64) ([]models.DocumentRef, error)
	DocumentContent(ctx context.Context, id int64) (string, error)
	History(ctx context.Context, owner string) ([]models.HistoryEntry, error)
}

// SimilarityStore persists one record per unordered document pair.
type SimilarityStore interface {
	UpsertIfAbsent(ctx context.Context, record models.SimilarityRecord) (bool, error)
	FindAllForDocument(ctx context.Context, id int64) ([]models.Match, error)
}

// Archiver keeps a copy of each accepted upload. The copy is read back when the
// stored body of a peer cannot be loaded.
type Archiver interface {
	PutUpload(ctx context.Context, doc models.Document) (string, error)
	GetUpload(ctx context.Context, owner string, id int64, fileName string) (string, error)
}

// Indexer makes accepted uploads searchable.
type Indexer interface {
	IndexDocument(ctx context.Context, doc models.Document) error
}

// Result holds scan execution results.
type Result struct {
	models.ScanResult
	Stage    Stage         `json:"-"`
	Compared int           `json:"-"`
	Duration time.Duration `json:"-"`
	Errors   []string      `json:"errors,omitempty"`
}

// Engine compares uploads against the owner's earlier documents.
type Engine struct {
	repo     Repository
	sims     SimilarityStore
	archiver Archiver // nil if archiving disabled
	indexer  Indexer  // nil if indexing disabled
	cmp      comparer
}

// New creates a new scan engine. archiver and indexer may be nil.
func New(repo Repository, sims SimilarityStore, archiver Archiver, indexer Indexer) *Engine {
	return &Engine{
		repo:     repo,
		sims:     sims,
		archiver: archiver,
		indexer:  indexer,
		cmp:      defaultComparer(),
	}
}

// Scan stores the upload, charges one credit and compares it with every other
// document of the same owner. Only InsufficientCredit, NotFound and InvalidInput
// abort the scan; later failures are collected in Result.Errors.
func (e *Engine) Scan(ctx context.Context, owner, fileName, content string) (*Result, error) {
	start := time.Now()
	if strings.TrimSpace(owner) == "" {
		return nil, fmt.Errorf("%w: owner is required", models.ErrInvalidInput)
	}
	if strings.TrimSpace(fileName) == "" {
		return nil, fmt.Errorf("%w: file name is required", models.ErrInvalidInput)
	}

	doc, remaining, err := e.repo.CreateDocument(ctx, owner, fileName, content)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	result := &Result{
		ScanResult: models.ScanResult{
			DocumentID:       doc.ID,
			FileName:         doc.FileName,
			Matches:          []models.Match{},
			RemainingCredits: remaining,
		},
		Stage: StageUploaded,
	}
	slog.Info("starting scan", "document_id", doc.ID, "owner", owner)

	e.archive(ctx, *doc, result)
	e.index(ctx, *doc, result)

	refs, err := e.repo.ListDocumentRefs(ctx, owner, doc.ID)
	if err != nil {
		result.addError(fmt.Errorf("%w: listing corpus: %w", models.ErrUnreadableDocument, err))
		refs = nil
	}

	var records []models.SimilarityRecord
	for _, ref := range refs {
		if ctx.Err() != nil {
			result.addError(fmt.Errorf("scan interrupted: %w", ctx.Err()))
			break
		}
		if ref.ID == doc.ID {
			continue
		}

		peer, err := e.peerContent(ctx, owner, ref)
		if err != nil {
			slog.Warn("skipping unreadable document", "document_id", ref.ID, "error", err)
			result.addError(err)
			continue
		}

		cmp := e.cmp.compare(content, peer)
		result.Compared++
		if cmp.Err != nil {
			slog.Warn("comparison degraded to positional fallback",
				"document_id", doc.ID, "peer_id", ref.ID, "error", cmp.Err)
			result.addError(fmt.Errorf("document %d: %w", ref.ID, cmp.Err))
		}
		if !similarity.Qualifies(cmp.Percentage) {
			continue
		}

		result.Matches = append(result.Matches, models.Match{
			DocumentID:       ref.ID,
			FileName:         ref.FileName,
			Percentage:       cmp.Percentage,
			MatchingPassages: cmp.Passages,
			CommonTopics:     cmp.Topics,
		})
		records = append(records, models.NewSimilarityRecord(doc.ID, ref.ID, cmp.Percentage, cmp.Passages))
	}
	result.Stage = StageCompared

	for _, record := range records {
		if _, err := e.sims.UpsertIfAbsent(ctx, record); err != nil {
			slog.Warn("failed to persist similarity",
				"document_id1", record.DocumentID1, "document_id2", record.DocumentID2, "error", err)
			result.addError(fmt.Errorf("%w: pair (%d, %d): %w", models.ErrPersistence, record.DocumentID1, record.DocumentID2, err))
		}
	}
	result.Stage = StagePersisted

	sortMatches(result.Matches)
	result.Stage = StageReported
	result.Duration = time.Since(start)

	slog.Info("scan complete",
		"document_id", doc.ID,
		"compared", result.Compared,
		"matches", len(result.Matches),
		"duration", result.Duration,
		"errors", len(result.Errors))

	return result, nil
}

func (e *Engine) archive(ctx context.Context, doc models.Document, result *Result) {
	if e.archiver == nil {
		return
	}
	name, err := e.archiver.PutUpload(ctx, doc)
	if err != nil {
		slog.Warn("failed to archive upload", "document_id", doc.ID, "error", err)
		result.addError(fmt.Errorf("%w: archiving document %d: %w", models.ErrPersistence, doc.ID, err))
		return
	}
	slog.Debug("upload archived", "document_id", doc.ID, "object", name)
}

func (e *Engine) peerContent(ctx context.Context, owner string, ref models.DocumentRef) (string, error) {
	content, err := e.repo.DocumentContent(ctx, ref.ID)
	if err == nil || e.archiver == nil || !errors.Is(err, models.ErrUnreadableDocument) {
		return content, err
	}

	archived, archiveErr := e.archiver.GetUpload(ctx, owner, ref.ID, ref.FileName)
	if archiveErr != nil {
		slog.Debug("no archived copy", "document_id", ref.ID, "error", archiveErr)
		return "", err
	}
	slog.Info("read peer from archive", "document_id", ref.ID)
	return archived, nil
}

func (e *Engine) index(ctx context.Context, doc models.Document, result *Result) {
	if e.indexer == nil {
		return
	}
	if err := e.indexer.IndexDocument(ctx, doc); err != nil {
		slog.Warn("failed to index document", "document_id", doc.ID, "error", err)
		result.addError(fmt.Errorf("%w: indexing document %d: %w", models.ErrPersistence, doc.ID, err))
	}
}

func (r *Result) addError(err error) {
	r.Errors = append(r.Errors, err.Error())
}

// sortMatches orders by descending percentage; ties keep comparison order.
func sortMatches(matches []models.Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Percentage > matches[j].Percentage
	})
}

// View returns a stored document with its recorded matches and an HTML rendering
// of its body with every matching passage highlighted. Documents of other owners
// are reported as not found.
func (e *Engine) View(ctx context.Context, id int64, owner string) (*models.DocumentView, error) {
	doc, err := e.repo.GetDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load document %d: %w", id, err)
	}
	if doc.Owner != owner {
		return nil, fmt.Errorf("failed to load document %d: %w", id, models.ErrNotFound)
	}

	matches, err := e.sims.FindAllForDocument(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for document %d: %w", id, err)
	}
	sortMatches(matches)

	var all []string
	for _, m := range matches {
		all = append(all, m.MatchingPassages...)
	}

	return &models.DocumentView{
		Document:    *doc,
		Matches:     matches,
		Highlighted: highlight.RenderHTML(doc.Content, all),
	}, nil
}

// History lists the owner's documents newest first.
func (e *Engine) History(ctx context.Context, owner string) ([]models.HistoryEntry, error) {
	entries, err := e.repo.History(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return entries, nil
}

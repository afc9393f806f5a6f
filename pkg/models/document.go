package models

import (
	"errors"
	"time"
)

// CreditCost is the number of credits a single scan consumes.
const CreditCost = 1

// Domain errors shared by the engine, the stores and the surfaces.
var (
	// ErrNotFound indicates a requested entity does not exist or is not visible to the caller.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInsufficientCredit indicates the owner's balance is below CreditCost.
	ErrInsufficientCredit = errors.New("insufficient credits")

	// ErrUnreadableDocument indicates stored content could not be loaded for comparison.
	ErrUnreadableDocument = errors.New("unreadable document")

	// ErrComparisonFailure indicates the scorer, matcher or miner failed on a pair.
	ErrComparisonFailure = errors.New("comparison failure")

	// ErrPersistence indicates a write after a successful comparison failed.
	ErrPersistence = errors.New("persistence failure")
)

// Document represents one uploaded plain-text document.
type Document struct {
	ID          int64     `json:"id"`
	Owner       string    `json:"email"`
	FileName    string    `json:"fileName"`
	Content     string    `json:"content"`
	ScanDate    time.Time `json:"scanDate"`
	CreditsUsed int       `json:"creditsUsed"`
}

// DocumentRef is a document of the owner's corpus as seen by the comparator.
type DocumentRef struct {
	ID       int64
	FileName string
}

// SimilarityRecord is the persisted relationship for one unordered document pair.
// DocumentID1 is always lower than DocumentID2.
type SimilarityRecord struct {
	DocumentID1      int64    `json:"documentId1"`
	DocumentID2      int64    `json:"documentId2"`
	Percentage       int      `json:"percentage"`
	MatchingPassages []string `json:"matchingPassages"`
}

// CanonicalPair orders two document ids lower first.
func CanonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// NewSimilarityRecord builds a record with canonical pair ordering.
func NewSimilarityRecord(a, b int64, percentage int, passages []string) SimilarityRecord {
	id1, id2 := CanonicalPair(a, b)
	if passages == nil {
		passages = []string{}
	}
	return SimilarityRecord{
		DocumentID1:      id1,
		DocumentID2:      id2,
		Percentage:       percentage,
		MatchingPassages: passages,
	}
}

// Match describes one qualifying peer document.
type Match struct {
	DocumentID       int64    `json:"documentId"`
	FileName         string   `json:"fileName"`
	Percentage       int      `json:"percentage"`
	MatchingPassages []string `json:"matchingPassages"`
	CommonTopics     []string `json:"commonTopics,omitempty"`
}

// ScanResult is the response to a successful scan.
type ScanResult struct {
	DocumentID       int64   `json:"documentId"`
	FileName         string  `json:"fileName"`
	Matches          []Match `json:"matches"`
	RemainingCredits int     `json:"remainingCredits"`
}

// DocumentView is a stored document together with its recorded matches.
type DocumentView struct {
	Document
	Matches     []Match `json:"matches"`
	Highlighted string  `json:"highlighted,omitempty"`
}

// HistoryEntry summarises one document in an owner's scan history.
type HistoryEntry struct {
	DocumentID int64     `json:"documentId"`
	FileName   string    `json:"fileName"`
	ScanDate   time.Time `json:"scanDate"`
	MatchCount int       `json:"matchCount"`
}

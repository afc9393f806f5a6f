// Package api serves the scan engine and credit bookkeeping over HTTP.
package api

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mfenderov/docscan/internal/scan"
	"github.com/mfenderov/docscan/internal/upload"
	"github.com/mfenderov/docscan/pkg/models"
)

// Engine is the scan engine as seen by the HTTP layer.
type Engine interface {
	Scan(ctx context.Context, owner, fileName, content string) (*scan.Result, error)
	View(ctx context.Context, id int64, owner string) (*models.DocumentView, error)
	History(ctx context.Context, owner string) ([]models.HistoryEntry, error)
}

// Store holds balances and credit requests.
type Store interface {
	Balance(ctx context.Context, email string) (int, error)
	SubmitCreditRequest(ctx context.Context, email string, credits int, reason string) (*models.CreditRequest, error)
	ListCreditRequests(ctx context.Context, email string) ([]models.CreditRequest, error)
	ListAllCreditRequests(ctx context.Context) ([]models.CreditRequest, error)
	GetCreditRequest(ctx context.Context, id int64) (*models.CreditRequest, error)
	DecideCreditRequest(ctx context.Context, id int64, status models.CreditRequestStatus, approvedCredits int, rejectionReason string) error
	Ping(ctx context.Context) error
}

// Options tunes the router.
type Options struct {
	MaxUploadBytes int64
}

type handler struct {
	engine         Engine
	store          Store
	maxUploadBytes int64
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(engine Engine, store Store, opts Options) *gin.Engine {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = upload.DefaultMaxBytes
	}
	h := &handler{engine: engine, store: store, maxUploadBytes: opts.MaxUploadBytes}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())
	// multipart overhead on top of the document itself
	r.MaxMultipartMemory = opts.MaxUploadBytes + 1<<20

	registerAssignmentRoutes(r, h)
	registerCreditRoutes(r, h)
	registerAdminRoutes(r, h)
	registerHealthRoutes(r, h)
	return r
}

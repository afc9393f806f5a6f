// Package mcp exposes the scan engine as Model Context Protocol tools.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mfenderov/docscan/internal/elasticsearch"
	"github.com/mfenderov/docscan/internal/scan"
	"github.com/mfenderov/docscan/internal/upload"
	"github.com/mfenderov/docscan/pkg/models"
)

// Config holds MCP server configuration.
type Config struct {
	Name           string
	Version        string
	MaxUploadBytes int64 // 0 means upload.DefaultMaxBytes
}

// Scanner is the part of the scan engine the tools call.
type Scanner interface {
	Scan(ctx context.Context, owner, fileName, content string) (*scan.Result, error)
	View(ctx context.Context, id int64, owner string) (*models.DocumentView, error)
}

// Searcher runs full-text queries over an owner's documents.
type Searcher interface {
	Search(ctx context.Context, owner, query string, limit int) ([]models.Document, error)
}

// Server wraps the MCP server with the scan engine.
type Server struct {
	mcpServer *server.MCPServer
	scanner   Scanner
	searcher  Searcher // nil if search disabled
	maxBytes  int64
}

// NewServer creates a new MCP server. search_documents is only registered when
// searcher is not nil.
func NewServer(config Config, scanner Scanner, searcher Searcher) (*Server, error) {
	if scanner == nil {
		return nil, errors.New("scanner is required")
	}

	mcpServer := server.NewMCPServer(
		config.Name,
		config.Version,
		server.WithToolCapabilities(true),
	)

	s := &Server{
		mcpServer: mcpServer,
		scanner:   scanner,
		searcher:  searcher,
		maxBytes:  config.MaxUploadBytes,
	}

	scanTool := mcp.NewTool("scan_document",
		mcp.WithDescription("Scan a plain-text document against the owner's earlier uploads. Costs one credit. Returns matches sorted by similarity."),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Owner account email"),
		),
		mcp.WithString("file_name",
			mcp.Required(),
			mcp.Description("Display name of the document"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Full plain-text body"),
		),
	)
	mcpServer.AddTool(scanTool, s.scanHandler)

	getDocTool := mcp.NewTool("get_document",
		mcp.WithDescription("Get a scanned document with its recorded matches and highlighted HTML"),
		mcp.WithString("email",
			mcp.Required(),
			mcp.Description("Owner account email"),
		),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Document ID to retrieve"),
		),
	)
	mcpServer.AddTool(getDocTool, s.getDocumentHandler)

	if searcher != nil {
		searchTool := mcp.NewTool("search_documents",
			mcp.WithDescription("Full-text search over the owner's scanned documents"),
			mcp.WithString("email",
				mcp.Required(),
				mcp.Description("Owner account email"),
			),
			mcp.WithString("query",
				mcp.Required(),
				mcp.Description("Search query string"),
			),
			mcp.WithNumber("limit",
				mcp.Description("Maximum number of results to return (default: 10)"),
			),
		)
		mcpServer.AddTool(searchTool, s.searchHandler)
	}

	return s, nil
}

// scanHandler handles the scan_document tool call.
func (s *Server) scanHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := req.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError("email parameter is required"), nil
	}
	fileName, err := req.RequireString("file_name")
	if err != nil {
		return mcp.NewToolResultError("file_name parameter is required"), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content parameter is required"), nil
	}

	result, err := s.handleScan(ctx, email, fileName, content)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}
	return jsonResult(result)
}

// getDocumentHandler handles the get_document tool call.
func (s *Server) getDocumentHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := req.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError("email parameter is required"), nil
	}
	id := req.GetInt("id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	view, err := s.handleGetDocument(ctx, int64(id), email)
	if errors.Is(err, models.ErrNotFound) {
		return mcp.NewToolResultError(fmt.Sprintf("document not found: %d", id)), nil
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("get document failed: %v", err)), nil
	}
	return jsonResult(view)
}

// searchHandler handles the search_documents tool call.
func (s *Server) searchHandler(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	email, err := req.RequireString("email")
	if err != nil {
		return mcp.NewToolResultError("email parameter is required"), nil
	}
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	limit := req.GetInt("limit", elasticsearch.DefaultSearchLimit)

	docs, err := s.handleSearch(ctx, email, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	return jsonResult(docs)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// handleScan validates the body as a plain-text upload and scans it for the owner.
// Rejected content is not charged.
func (s *Server) handleScan(ctx context.Context, email, fileName, content string) (*scan.Result, error) {
	text, err := upload.Validate(fileName, "text/plain", []byte(content), s.maxBytes)
	if err != nil {
		return nil, err
	}
	return s.scanner.Scan(ctx, email, fileName, text)
}

// handleGetDocument retrieves a document view by ID.
func (s *Server) handleGetDocument(ctx context.Context, id int64, email string) (*models.DocumentView, error) {
	return s.scanner.View(ctx, id, email)
}

// handleSearch searches the owner's documents.
func (s *Server) handleSearch(ctx context.Context, email, query string, limit int) ([]models.Document, error) {
	if s.searcher == nil {
		return nil, errors.New("search is not enabled")
	}
	return s.searcher.Search(ctx, email, query, limit)
}

// ServeStdio starts the MCP server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

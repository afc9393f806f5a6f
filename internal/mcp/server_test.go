package mcp

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mfenderov/docscan/internal/database"
	"github.com/mfenderov/docscan/internal/scan"
	"github.com/mfenderov/docscan/pkg/models"
)

const body = "Consensus protocols keep replicas in agreement. Every write goes through the leader."

func newTestServer(t *testing.T, searcher Searcher) (*Server, *database.Store) {
	t.Helper()
	store, err := database.Open(filepath.Join(t.TempDir(), "docscan.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	if _, err := store.CreateAccount(context.Background(), models.Account{Email: "ann@example.com", Credits: 5}); err != nil {
		t.Fatalf("CreateAccount() error = %v", err)
	}

	s, err := NewServer(Config{Name: "docscan", Version: "1.0.0", MaxUploadBytes: 1024}, scan.New(store, store, nil, nil), searcher)
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return s, store
}

func callTool(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want mcp.TextContent", res.Content[0])
	}
	return text.Text
}

func TestServer_Creation(t *testing.T) {
	if _, err := NewServer(Config{Name: "docscan"}, nil, nil); err == nil {
		t.Error("NewServer() without a scanner should fail")
	}

	s, _ := newTestServer(t, nil)
	if s.mcpServer == nil {
		t.Error("mcpServer should not be nil")
	}
}

func TestServer_ScanAndGet(t *testing.T) {
	s, _ := newTestServer(t, nil)
	ctx := context.Background()

	first, err := s.handleScan(ctx, "ann@example.com", "first.txt", body)
	if err != nil {
		t.Fatalf("handleScan() error = %v", err)
	}
	second, err := s.handleScan(ctx, "ann@example.com", "second.txt", body)
	if err != nil {
		t.Fatalf("handleScan() error = %v", err)
	}
	if len(second.Matches) != 1 || second.Matches[0].DocumentID != first.DocumentID {
		t.Fatalf("handleScan() matches = %+v, want one match against %d", second.Matches, first.DocumentID)
	}

	view, err := s.handleGetDocument(ctx, first.DocumentID, "ann@example.com")
	if err != nil {
		t.Fatalf("handleGetDocument() error = %v", err)
	}
	if view.FileName != "first.txt" || len(view.Matches) != 1 {
		t.Errorf("handleGetDocument() = %+v", view)
	}
}

func TestServer_ToolHandlers(t *testing.T) {
	s, _ := newTestServer(t, nil)
	ctx := context.Background()

	res, err := s.scanHandler(ctx, callTool(map[string]any{
		"email":     "ann@example.com",
		"file_name": "essay.txt",
		"content":   body,
	}))
	if err != nil {
		t.Fatalf("scanHandler() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("scanHandler() returned tool error: %s", resultText(t, res))
	}
	if text := resultText(t, res); !strings.Contains(text, `"remainingCredits":4`) {
		t.Errorf("scanHandler() = %s, want remainingCredits 4", text)
	}

	res, err = s.scanHandler(ctx, callTool(map[string]any{"email": "ann@example.com"}))
	if err != nil {
		t.Fatalf("scanHandler() error = %v", err)
	}
	if !res.IsError {
		t.Error("scanHandler() without file_name should return a tool error")
	}

	res, err = s.getDocumentHandler(ctx, callTool(map[string]any{"email": "bob@example.com", "id": 1}))
	if err != nil {
		t.Fatalf("getDocumentHandler() error = %v", err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), "not found") {
		t.Error("getDocumentHandler() for another owner should report not found")
	}

	res, err = s.searchHandler(ctx, callTool(map[string]any{"email": "ann@example.com", "query": "replicas"}))
	if err != nil {
		t.Fatalf("searchHandler() error = %v", err)
	}
	if !res.IsError {
		t.Error("searchHandler() without a searcher should return a tool error")
	}
}

func TestServer_ScanRejectsInvalidContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"empty", "", "empty"},
		{"binary", "\x00\xff\xfe binary", "not valid UTF-8"},
		{"oversize", strings.Repeat("a", 2048), "exceeds 1024 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, store := newTestServer(t, nil)
			ctx := context.Background()

			res, err := s.scanHandler(ctx, callTool(map[string]any{
				"email":     "ann@example.com",
				"file_name": "essay.txt",
				"content":   tt.content,
			}))
			if err != nil {
				t.Fatalf("scanHandler() error = %v", err)
			}
			if !res.IsError {
				t.Fatalf("scanHandler() = %s, want tool error", resultText(t, res))
			}
			if text := resultText(t, res); !strings.Contains(text, tt.wantErr) {
				t.Errorf("scanHandler() = %q, want it to mention %q", text, tt.wantErr)
			}

			balance, err := store.Balance(ctx, "ann@example.com")
			if err != nil {
				t.Fatalf("Balance() error = %v", err)
			}
			if balance != 5 {
				t.Errorf("Balance() = %d, want 5 (rejected content is not charged)", balance)
			}
		})
	}
}

type stubSearcher struct {
	owner string
	limit int
}

func (s *stubSearcher) Search(_ context.Context, owner, query string, limit int) ([]models.Document, error) {
	s.owner, s.limit = owner, limit
	return []models.Document{{ID: 1, Owner: owner, FileName: query + ".txt"}}, nil
}

func TestServer_SearchTool(t *testing.T) {
	searcher := &stubSearcher{}
	s, _ := newTestServer(t, searcher)

	res, err := s.searchHandler(context.Background(), callTool(map[string]any{
		"email": "ann@example.com",
		"query": "raft",
	}))
	if err != nil {
		t.Fatalf("searchHandler() error = %v", err)
	}
	if res.IsError {
		t.Fatalf("searchHandler() returned tool error: %s", resultText(t, res))
	}
	if searcher.owner != "ann@example.com" || searcher.limit != 10 {
		t.Errorf("Search called with owner=%q limit=%d", searcher.owner, searcher.limit)
	}
	if !strings.Contains(resultText(t, res), "raft.txt") {
		t.Errorf("searchHandler() = %s", resultText(t, res))
	}
}

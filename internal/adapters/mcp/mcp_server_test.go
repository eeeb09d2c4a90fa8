package mcp

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ewalden/drift/internal/domain"
)

// mockProvider is a mock implementation of ports.MCPProvider for testing.
type mockProvider struct {
	items   []*domain.LibraryItem
	entries []*domain.CommittedFeedbackEntry
	records []*domain.SessionRecord
	stats   *domain.PracticeStats
}

func (m *mockProvider) ListLibrary(ctx context.Context) ([]*domain.LibraryItem, error) {
	return m.items, nil
}

func (m *mockProvider) FeedbackHistory(ctx context.Context, since time.Time) ([]*domain.CommittedFeedbackEntry, error) {
	return m.entries, nil
}

func (m *mockProvider) SessionRecords(ctx context.Context, since time.Time) ([]*domain.SessionRecord, error) {
	return m.records, nil
}

func (m *mockProvider) Stats(ctx context.Context) (*domain.PracticeStats, error) {
	if m.stats != nil {
		return m.stats, nil
	}
	return &domain.PracticeStats{}, nil
}

func TestNewServer(t *testing.T) {
	mock := &mockProvider{}
	server := NewServer(mock)

	if server == nil {
		t.Fatal("NewServer() returned nil")
	}

	if server.provider != mock {
		t.Error("NewServer() did not set provider correctly")
	}

	if server.server == nil {
		t.Error("NewServer() did not create MCP server")
	}
}

func TestServer_IsRunning(t *testing.T) {
	server := NewServer(&mockProvider{})

	if server.IsRunning() {
		t.Error("IsRunning() should return false before Start()")
	}
}

func TestServer_handleListLibrary(t *testing.T) {
	mock := &mockProvider{
		items: []*domain.LibraryItem{
			domain.NewLibraryItem("Morning Calm", "Ana Reyes", "", 600),
			domain.NewLibraryItem("Body Scan", "Miko Tanaka", "", 1200),
		},
	}

	server := NewServer(mock)
	request := mcp.CallToolRequest{}

	result, err := server.handleListLibrary(context.Background(), request)
	if err != nil {
		t.Fatalf("handleListLibrary() error = %v", err)
	}
	if result == nil {
		t.Fatal("handleListLibrary() returned nil result")
	}
	if len(result.Content) == 0 {
		t.Error("handleListLibrary() returned empty content")
	}
}

func TestServer_handleGetFeedbackHistory(t *testing.T) {
	mock := &mockProvider{
		entries: []*domain.CommittedFeedbackEntry{
			{
				ID:               "entry-1",
				SessionID:        "session-1",
				Label:            domain.FeedbackGood,
				TimestampSeconds: 45,
				Date:             time.Now(),
			},
		},
	}

	server := NewServer(mock)
	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: map[string]interface{}{
				"days": float64(14),
			},
		},
	}

	result, err := server.handleGetFeedbackHistory(context.Background(), request)
	if err != nil {
		t.Fatalf("handleGetFeedbackHistory() error = %v", err)
	}
	if result == nil {
		t.Fatal("handleGetFeedbackHistory() returned nil result")
	}
	if len(result.Content) == 0 {
		t.Error("handleGetFeedbackHistory() returned empty content")
	}
}

func TestServer_handleGetSessionRecords(t *testing.T) {
	mock := &mockProvider{
		records: []*domain.SessionRecord{
			{
				ID:        "record-1",
				SessionID: "session-1",
				Minutes:   7.5,
				Module:    "meditation",
				CreatedAt: time.Now(),
			},
		},
	}

	server := NewServer(mock)
	request := mcp.CallToolRequest{}

	result, err := server.handleGetSessionRecords(context.Background(), request)
	if err != nil {
		t.Fatalf("handleGetSessionRecords() error = %v", err)
	}
	if result == nil {
		t.Fatal("handleGetSessionRecords() returned nil result")
	}
}

func TestServer_handleGetStats(t *testing.T) {
	mock := &mockProvider{
		stats: &domain.PracticeStats{
			SessionsCompleted: 3,
			TotalMinutes:      42.5,
			MeanRating:        7.2,
			LabelCounts: map[domain.FeedbackLabel]int{
				domain.FeedbackGood: 2,
			},
		},
	}

	server := NewServer(mock)
	request := mcp.CallToolRequest{}

	result, err := server.handleGetStats(context.Background(), request)
	if err != nil {
		t.Fatalf("handleGetStats() error = %v", err)
	}
	if result == nil {
		t.Fatal("handleGetStats() returned nil result")
	}
	if len(result.Content) == 0 {
		t.Error("handleGetStats() returned empty content")
	}
}

package ports

import (
	"context"
	"time"

	"github.com/ewalden/drift/internal/domain"
)

// MCPProvider exposes the read-only queries the MCP server serves.
type MCPProvider interface {
	// ListLibrary returns the session library.
	ListLibrary(ctx context.Context) ([]*domain.LibraryItem, error)

	// FeedbackHistory returns committed feedback entries since the given time.
	FeedbackHistory(ctx context.Context, since time.Time) ([]*domain.CommittedFeedbackEntry, error)

	// SessionRecords returns completed-session records since the given time.
	SessionRecords(ctx context.Context, since time.Time) ([]*domain.SessionRecord, error)

	// Stats returns aggregate listening statistics.
	Stats(ctx context.Context) (*domain.PracticeStats, error)
}

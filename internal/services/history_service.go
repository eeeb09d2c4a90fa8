package services

import (
	"context"
	"time"

	"github.com/ewalden/drift/internal/domain"
	"github.com/ewalden/drift/internal/ports"
)

// HistoryService assembles the listening history read models. It also backs
// the MCP server's read-only queries.
type HistoryService struct {
	storage ports.Storage
}

// Ensure HistoryService implements ports.MCPProvider.
var _ ports.MCPProvider = (*HistoryService)(nil)

// NewHistoryService creates a new history service.
func NewHistoryService(storage ports.Storage) *HistoryService {
	return &HistoryService{storage: storage}
}

// ListLibrary returns the session library.
func (s *HistoryService) ListLibrary(ctx context.Context) ([]*domain.LibraryItem, error) {
	return s.storage.Library().FindAll(ctx)
}

// FeedbackHistory returns committed feedback entries since the given time.
func (s *HistoryService) FeedbackHistory(ctx context.Context, since time.Time) ([]*domain.CommittedFeedbackEntry, error) {
	return s.storage.Feedback().FindRecent(ctx, since)
}

// SessionFeedback returns the feedback entries committed during one session.
func (s *HistoryService) SessionFeedback(ctx context.Context, sessionID string) ([]*domain.CommittedFeedbackEntry, error) {
	return s.storage.Feedback().FindBySession(ctx, sessionID)
}

// SessionRecords returns completed-session records since the given time.
func (s *HistoryService) SessionRecords(ctx context.Context, since time.Time) ([]*domain.SessionRecord, error) {
	return s.storage.Records().FindRecentRecords(ctx, since)
}

// Stats returns aggregate listening statistics with per-label feedback
// counts folded in.
func (s *HistoryService) Stats(ctx context.Context) (*domain.PracticeStats, error) {
	stats, err := s.storage.Records().GetStats(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.storage.Feedback().CountByLabel(ctx)
	if err != nil {
		return nil, err
	}
	stats.LabelCounts = counts
	return stats, nil
}

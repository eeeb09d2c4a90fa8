package storage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ewalden/drift/internal/domain"
	"github.com/ewalden/drift/internal/ports"
)

// gateway implements ports.Gateway over the record and feedback
// repositories. Each call is an independent write; there is no transaction
// spanning them.
type gateway struct {
	storage ports.Storage
}

// Ensure gateway implements ports.Gateway.
var _ ports.Gateway = (*gateway)(nil)

// NewGateway creates a persistence gateway backed by the given storage.
func NewGateway(storage ports.Storage) ports.Gateway {
	return &gateway{storage: storage}
}

// SaveCompletedSession writes the completed-session record.
func (g *gateway) SaveCompletedSession(ctx context.Context, userID, sessionID string, minutes float64, module string) error {
	record := &domain.SessionRecord{
		ID:        uuid.New().String(),
		UserID:    userID,
		SessionID: sessionID,
		Minutes:   minutes,
		Module:    module,
		CreatedAt: time.Now(),
	}
	return g.storage.Records().SaveRecord(ctx, record)
}

// SaveRating writes the 0-10 session rating.
func (g *gateway) SaveRating(ctx context.Context, userID, sessionID string, rating int, module string) error {
	record := &domain.RatingRecord{
		ID:        uuid.New().String(),
		UserID:    userID,
		SessionID: sessionID,
		Rating:    rating,
		Module:    module,
		CreatedAt: time.Now(),
	}
	return g.storage.Records().SaveRating(ctx, record)
}

// SaveFeedbackEntry writes a committed feedback entry and returns its id.
func (g *gateway) SaveFeedbackEntry(ctx context.Context, userID, sessionID, label string, timestampSeconds int, module string) (string, error) {
	entry := &domain.CommittedFeedbackEntry{
		ID:               uuid.New().String(),
		SessionID:        sessionID,
		Label:            domain.FeedbackLabel(label),
		TimestampSeconds: timestampSeconds,
		Date:             time.Now(),
	}
	if err := g.storage.Feedback().Save(ctx, entry, userID, module); err != nil {
		return "", err
	}
	return entry.ID, nil
}

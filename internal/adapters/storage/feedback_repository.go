package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ewalden/drift/internal/domain"
	"github.com/ewalden/drift/internal/ports"
)

// feedbackRepository implements ports.FeedbackRepository using SQLite.
// Entries are append-only; there is no update path.
type feedbackRepository struct {
	db *sql.DB
}

// newFeedbackRepository creates a new feedback repository.
func newFeedbackRepository(db *sql.DB) ports.FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Save persists a committed entry.
func (r *feedbackRepository) Save(ctx context.Context, entry *domain.CommittedFeedbackEntry, userID, module string) error {
	query := `
		INSERT INTO feedback_entries (id, user_id, session_id, label, timestamp_seconds, module, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.ID,
		userID,
		entry.SessionID,
		string(entry.Label),
		entry.TimestampSeconds,
		module,
		entry.Date,
	)

	if err != nil {
		return fmt.Errorf("failed to save feedback entry: %w", err)
	}

	return nil
}

// FindBySession retrieves all entries for a playback session, oldest first.
func (r *feedbackRepository) FindBySession(ctx context.Context, sessionID string) ([]*domain.CommittedFeedbackEntry, error) {
	query := `
		SELECT id, session_id, label, timestamp_seconds, created_at
		FROM feedback_entries
		WHERE session_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query feedback entries: %w", err)
	}
	defer rows.Close()

	return scanFeedbackEntries(rows)
}

// FindRecent retrieves entries committed since the given time, newest first.
func (r *feedbackRepository) FindRecent(ctx context.Context, since time.Time) ([]*domain.CommittedFeedbackEntry, error) {
	query := `
		SELECT id, session_id, label, timestamp_seconds, created_at
		FROM feedback_entries
		WHERE created_at >= ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent feedback entries: %w", err)
	}
	defer rows.Close()

	return scanFeedbackEntries(rows)
}

// CountByLabel aggregates entry counts per label.
func (r *feedbackRepository) CountByLabel(ctx context.Context) (map[domain.FeedbackLabel]int, error) {
	query := `
		SELECT label, COUNT(*)
		FROM feedback_entries
		GROUP BY label
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count feedback entries: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.FeedbackLabel]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, fmt.Errorf("failed to scan label count: %w", err)
		}
		counts[domain.FeedbackLabel(label)] = count
	}

	return counts, rows.Err()
}

func scanFeedbackEntries(rows *sql.Rows) ([]*domain.CommittedFeedbackEntry, error) {
	var entries []*domain.CommittedFeedbackEntry
	for rows.Next() {
		var entry domain.CommittedFeedbackEntry
		var label string
		if err := rows.Scan(
			&entry.ID,
			&entry.SessionID,
			&label,
			&entry.TimestampSeconds,
			&entry.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan feedback entry: %w", err)
		}
		entry.Label = domain.FeedbackLabel(label)
		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

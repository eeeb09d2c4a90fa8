package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ewalden/drift/internal/domain"
	"github.com/ewalden/drift/internal/ports"
)

// recordRepository implements ports.RecordRepository using SQLite.
type recordRepository struct {
	db *sql.DB
}

// newRecordRepository creates a new record repository.
func newRecordRepository(db *sql.DB) ports.RecordRepository {
	return &recordRepository{db: db}
}

// SaveRecord persists a completed-session record.
func (r *recordRepository) SaveRecord(ctx context.Context, record *domain.SessionRecord) error {
	query := `
		INSERT INTO session_records (id, user_id, session_id, minutes, module, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.SessionID,
		record.Minutes,
		record.Module,
		record.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save session record: %w", err)
	}

	return nil
}

// SaveRating persists a session rating.
func (r *recordRepository) SaveRating(ctx context.Context, rating *domain.RatingRecord) error {
	query := `
		INSERT INTO ratings (id, user_id, session_id, rating, module, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rating.ID,
		rating.UserID,
		rating.SessionID,
		rating.Rating,
		rating.Module,
		rating.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save rating: %w", err)
	}

	return nil
}

// FindRecentRecords retrieves completed-session records since the given
// time, newest first.
func (r *recordRepository) FindRecentRecords(ctx context.Context, since time.Time) ([]*domain.SessionRecord, error) {
	query := `
		SELECT id, user_id, session_id, minutes, module, created_at
		FROM session_records
		WHERE created_at >= ?
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query session records: %w", err)
	}
	defer rows.Close()

	var records []*domain.SessionRecord
	for rows.Next() {
		var record domain.SessionRecord
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.SessionID,
			&record.Minutes,
			&record.Module,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan session record: %w", err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}

// GetStats returns aggregate completion and rating statistics. Label counts
// are filled in by the caller from the feedback repository.
func (r *recordRepository) GetStats(ctx context.Context) (*domain.PracticeStats, error) {
	stats := &domain.PracticeStats{}

	query := `
		SELECT COUNT(*), COALESCE(SUM(minutes), 0)
		FROM session_records
	`
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.SessionsCompleted, &stats.TotalMinutes)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate session records: %w", err)
	}

	var meanRating sql.NullFloat64
	err = r.db.QueryRowContext(ctx, "SELECT AVG(rating) FROM ratings").Scan(&meanRating)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	if meanRating.Valid {
		stats.MeanRating = meanRating.Float64
	}

	return stats, nil
}

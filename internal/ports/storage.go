// Package ports defines the interfaces (driven and driving ports) for the
// drift application following hexagonal architecture principles. These
// interfaces define the contracts between the domain layer and external
// infrastructure.
package ports

import (
	"context"
	"time"

	"github.com/ewalden/drift/internal/domain"
)

// LibraryRepository defines the interface for the session library.
// This is a driven port (implemented by adapters).
type LibraryRepository interface {
	// Save persists a library item.
	Save(ctx context.Context, item *domain.LibraryItem) error

	// FindByID retrieves a library item by its unique identifier.
	FindByID(ctx context.Context, id string) (*domain.LibraryItem, error)

	// FindAll retrieves the whole library, newest first.
	FindAll(ctx context.Context) ([]*domain.LibraryItem, error)

	// Search fuzzy-matches items by title or guide.
	Search(ctx context.Context, query string) ([]*domain.LibraryItem, error)

	// Delete removes an item from the library.
	Delete(ctx context.Context, id string) error
}

// FeedbackRepository defines the interface for committed feedback entries.
// Entries are append-only and never mutated.
type FeedbackRepository interface {
	// Save persists a committed entry.
	Save(ctx context.Context, entry *domain.CommittedFeedbackEntry, userID, module string) error

	// FindBySession retrieves all entries for a playback session.
	FindBySession(ctx context.Context, sessionID string) ([]*domain.CommittedFeedbackEntry, error)

	// FindRecent retrieves entries committed since the given time.
	FindRecent(ctx context.Context, since time.Time) ([]*domain.CommittedFeedbackEntry, error)

	// CountByLabel aggregates entry counts per label.
	CountByLabel(ctx context.Context) (map[domain.FeedbackLabel]int, error)
}

// RecordRepository defines the interface for completed-session records and
// ratings.
type RecordRepository interface {
	// SaveRecord persists a completed-session record.
	SaveRecord(ctx context.Context, record *domain.SessionRecord) error

	// SaveRating persists a session rating.
	SaveRating(ctx context.Context, rating *domain.RatingRecord) error

	// FindRecentRecords retrieves completed-session records since the given time.
	FindRecentRecords(ctx context.Context, since time.Time) ([]*domain.SessionRecord, error)

	// GetStats returns aggregate completion and rating statistics.
	GetStats(ctx context.Context) (*domain.PracticeStats, error)
}

// Storage is the combined repository interface.
// This is a driven port (implemented by adapters).
type Storage interface {
	// Library provides access to the session library.
	Library() LibraryRepository

	// Feedback provides access to committed feedback entries.
	Feedback() FeedbackRepository

	// Records provides access to completed-session records and ratings.
	Records() RecordRepository

	// Close closes the storage connection.
	Close() error

	// Migrate runs database migrations.
	Migrate() error
}

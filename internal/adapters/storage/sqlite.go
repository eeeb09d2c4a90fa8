// Package storage provides SQLite implementations of the storage ports.
package storage

import (
	"database/sql"
	"fmt"

	"github.com/ewalden/drift/internal/ports"
	_ "modernc.org/sqlite"
)

// sqliteStorage implements the ports.Storage interface using SQLite.
type sqliteStorage struct {
	db           *sql.DB
	libraryRepo  ports.LibraryRepository
	feedbackRepo ports.FeedbackRepository
	recordRepo   ports.RecordRepository
}

// Ensure sqliteStorage implements ports.Storage.
var _ ports.Storage = (*sqliteStorage)(nil)

// New creates a new SQLite storage instance.
func New(dbPath string) (ports.Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys and WAL mode for better performance
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	storage := &sqliteStorage{
		db:           db,
		libraryRepo:  newLibraryRepository(db),
		feedbackRepo: newFeedbackRepository(db),
		recordRepo:   newRecordRepository(db),
	}

	if err := storage.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return storage, nil
}

// NewMemory creates a new in-memory SQLite storage instance for testing.
func NewMemory() (ports.Storage, error) {
	return New(":memory:")
}

// Library returns the library repository.
func (s *sqliteStorage) Library() ports.LibraryRepository {
	return s.libraryRepo
}

// Feedback returns the feedback repository.
func (s *sqliteStorage) Feedback() ports.FeedbackRepository {
	return s.feedbackRepo
}

// Records returns the record repository.
func (s *sqliteStorage) Records() ports.RecordRepository {
	return s.recordRepo
}

// Close closes the database connection.
func (s *sqliteStorage) Close() error {
	return s.db.Close()
}

// Migrate creates the database schema.
func (s *sqliteStorage) Migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS library (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		guide TEXT,
		source_ref TEXT,
		duration_seconds INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_library_created ON library(created_at);

	CREATE TABLE IF NOT EXISTS feedback_entries (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		label TEXT NOT NULL,
		timestamp_seconds INTEGER NOT NULL,
		module TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_feedback_session ON feedback_entries(session_id);
	CREATE INDEX IF NOT EXISTS idx_feedback_created ON feedback_entries(created_at);

	CREATE TABLE IF NOT EXISTS session_records (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		minutes REAL NOT NULL,
		module TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_records_created ON session_records(created_at);

	CREATE TABLE IF NOT EXISTS ratings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		session_id TEXT NOT NULL,
		rating INTEGER NOT NULL,
		module TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ratings_session ON ratings(session_id);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	return nil
}

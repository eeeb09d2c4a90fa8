package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/ewalden/drift/internal/domain"
	"github.com/ewalden/drift/internal/ports"
)

// libraryRepository implements ports.LibraryRepository using SQLite.
type libraryRepository struct {
	db *sql.DB
}

// newLibraryRepository creates a new library repository.
func newLibraryRepository(db *sql.DB) ports.LibraryRepository {
	return &libraryRepository{db: db}
}

// Save persists a library item.
func (r *libraryRepository) Save(ctx context.Context, item *domain.LibraryItem) error {
	query := `
		INSERT INTO library (id, title, guide, source_ref, duration_seconds, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Guide,
		item.SourceRef,
		item.DurationSeconds,
		item.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save library item: %w", err)
	}

	return nil
}

// FindByID retrieves a library item by its unique identifier.
func (r *libraryRepository) FindByID(ctx context.Context, id string) (*domain.LibraryItem, error) {
	query := `
		SELECT id, title, guide, source_ref, duration_seconds, created_at
		FROM library
		WHERE id = ?
	`

	var item domain.LibraryItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Title,
		&item.Guide,
		&item.SourceRef,
		&item.DurationSeconds,
		&item.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, domain.ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find library item: %w", err)
	}

	return &item, nil
}

// FindAll retrieves the whole library, newest first.
func (r *libraryRepository) FindAll(ctx context.Context) ([]*domain.LibraryItem, error) {
	query := `
		SELECT id, title, guide, source_ref, duration_seconds, created_at
		FROM library
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query library: %w", err)
	}
	defer rows.Close()

	var items []*domain.LibraryItem
	for rows.Next() {
		var item domain.LibraryItem
		if err := rows.Scan(
			&item.ID,
			&item.Title,
			&item.Guide,
			&item.SourceRef,
			&item.DurationSeconds,
			&item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan library item: %w", err)
		}
		items = append(items, &item)
	}

	return items, rows.Err()
}

// Search fuzzy-matches items by title or guide.
func (r *libraryRepository) Search(ctx context.Context, query string) ([]*domain.LibraryItem, error) {
	items, err := r.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load library for search: %w", err)
	}

	// Match against "title guide" so either field can hit
	haystack := make([]string, len(items))
	for i, item := range items {
		haystack[i] = strings.ToLower(item.Title + " " + item.Guide)
	}

	matches := fuzzy.Find(strings.ToLower(query), haystack)

	results := make([]*domain.LibraryItem, 0, len(matches))
	for _, m := range matches {
		results = append(results, items[m.Index])
	}

	return results, nil
}

// Delete removes an item from the library.
func (r *libraryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM library WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete library item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return domain.ErrItemNotFound
	}

	return nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ewalden/drift/internal/domain"
	"github.com/ewalden/drift/internal/ports"
)

// LibraryService handles session library use cases.
type LibraryService struct {
	storage ports.Storage
}

// NewLibraryService creates a new library service.
func NewLibraryService(storage ports.Storage) *LibraryService {
	return &LibraryService{storage: storage}
}

// AddItemRequest contains data to add a library item.
type AddItemRequest struct {
	Title           string
	Guide           string
	SourceRef       string
	DurationSeconds int
}

// AddItem adds a new session to the library.
func (s *LibraryService) AddItem(ctx context.Context, req AddItemRequest) (*domain.LibraryItem, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("title cannot be empty")
	}

	item := domain.NewLibraryItem(title, strings.TrimSpace(req.Guide), req.SourceRef, req.DurationSeconds)
	if err := s.storage.Library().Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save library item: %w", err)
	}

	return item, nil
}

// GetItem retrieves a library item by id.
func (s *LibraryService) GetItem(ctx context.Context, id string) (*domain.LibraryItem, error) {
	return s.storage.Library().FindByID(ctx, id)
}

// ListItems retrieves the whole library, newest first.
func (s *LibraryService) ListItems(ctx context.Context) ([]*domain.LibraryItem, error) {
	return s.storage.Library().FindAll(ctx)
}

// SearchItems fuzzy-matches library items by title or guide. An empty query
// returns the whole library.
func (s *LibraryService) SearchItems(ctx context.Context, query string) ([]*domain.LibraryItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.storage.Library().FindAll(ctx)
	}
	return s.storage.Library().Search(ctx, query)
}

// RemoveItem deletes a library item.
func (s *LibraryService) RemoveItem(ctx context.Context, id string) error {
	if _, err := s.storage.Library().FindByID(ctx, id); err != nil {
		return fmt.Errorf("item not found: %w", err)
	}
	return s.storage.Library().Delete(ctx, id)
}

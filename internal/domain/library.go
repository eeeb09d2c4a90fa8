package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrItemNotFound is returned when a library item does not exist.
var ErrItemNotFound = errors.New("library item not found")

// LibraryItem is a playable guided session in the local library.
type LibraryItem struct {
	ID              string
	Title           string
	Guide           string
	SourceRef       string
	DurationSeconds int
	CreatedAt       time.Time
}

// NewLibraryItem creates a library entry with a fresh id.
func NewLibraryItem(title, guide, sourceRef string, durationSeconds int) *LibraryItem {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	return &LibraryItem{
		ID:              generateID(),
		Title:           title,
		Guide:           guide,
		SourceRef:       sourceRef,
		DurationSeconds: durationSeconds,
		CreatedAt:       time.Now(),
	}
}

// DurationLabel formats the item duration as e.g. "10 min".
func (i *LibraryItem) DurationLabel() string {
	mins := i.DurationSeconds / 60
	if mins < 1 {
		mins = 1
	}
	return formatMinutes(mins)
}

func formatMinutes(mins int) string {
	return fmt.Sprintf("%d min", mins)
}

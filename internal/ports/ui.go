package ports

import (
	"context"

	"github.com/ewalden/drift/internal/domain"
)

// PlayerUI is the interactive player surface. This is a driving port
// (called by the application layer); the bubbletea adapter implements it.
type PlayerUI interface {
	// Run renders the player for an activated session and blocks until the
	// session closes or the user quits.
	Run(ctx context.Context, player *domain.Player) error
}

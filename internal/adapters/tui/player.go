package tui

import (
	"context"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ewalden/drift/internal/config"
	"github.com/ewalden/drift/internal/domain"
	"github.com/ewalden/drift/internal/ports"
)

// Player implements the ports.PlayerUI interface using Bubbletea.
type Player struct {
	theme      *config.ThemeConfig
	playerCfg  *config.PlayerConfig
	onComplete func(title string, minutes float64)

	program *tea.Program
	cancel  context.CancelFunc
	mu      sync.RWMutex
	wg      sync.WaitGroup
}

// Ensure Player implements ports.PlayerUI.
var _ ports.PlayerUI = (*Player)(nil)

// NewPlayer creates a new player UI adapter.
func NewPlayer(theme *config.ThemeConfig, playerCfg *config.PlayerConfig) *Player {
	return &Player{theme: theme, playerCfg: playerCfg}
}

// SetOnSessionComplete registers a hook fired once when a session finishes.
func (p *Player) SetOnSessionComplete(fn func(title string, minutes float64)) {
	p.onComplete = fn
}

// Run renders the player for an activated session and blocks until the
// session closes or the user quits.
func (p *Player) Run(ctx context.Context, player *domain.Player) error {
	model := NewModel(player, p.theme)
	model.ApplyPlayerConfig(p.playerCfg)
	if p.onComplete != nil {
		model.SetOnSessionComplete(p.onComplete)
	}

	p.mu.Lock()
	p.program = tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	p.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	p.mu.Lock()
	p.cancel = cancel
	p.mu.Unlock()
	defer cancel()

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		<-runCtx.Done()
		p.mu.RLock()
		program := p.program
		p.mu.RUnlock()
		if program != nil {
			program.Quit()
		}
	}()

	_, err := p.program.Run()

	cancel()
	p.wg.Wait()

	if err != nil {
		return fmt.Errorf("failed to run player UI: %w", err)
	}
	return nil
}

// Stop gracefully stops the player interface.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
	if p.program != nil {
		p.program.Quit()
	}
}

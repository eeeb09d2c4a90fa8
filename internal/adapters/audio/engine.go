// Package audio provides the playback engine adapter. The bundled engine is
// a silent one: it tracks what the player asked for and logs transitions so
// the interaction core runs unchanged on machines without an audio stack.
package audio

import (
	"context"
	"log/slog"

	"github.com/ewalden/drift/internal/ports"
)

// silentEngine implements ports.AudioEngine without producing sound. The
// playback clock is the source of truth for position; engine calls are
// advisory side effects.
type silentEngine struct {
	logger *slog.Logger
	source string
}

// Ensure silentEngine implements ports.AudioEngine.
var _ ports.AudioEngine = (*silentEngine)(nil)

// NewSilentEngine creates a no-op audio engine.
func NewSilentEngine(logger *slog.Logger) ports.AudioEngine {
	if logger == nil {
		logger = slog.Default()
	}
	return &silentEngine{logger: logger}
}

// Load prepares a source for playback.
func (e *silentEngine) Load(ctx context.Context, sourceRef string) error {
	e.source = sourceRef
	e.logger.Debug("audio source loaded", "source", sourceRef)
	return nil
}

// Play starts or resumes the engine.
func (e *silentEngine) Play() {
	e.logger.Debug("audio play", "source", e.source)
}

// Pause suspends the engine.
func (e *silentEngine) Pause() {
	e.logger.Debug("audio pause", "source", e.source)
}

// Stop tears playback down.
func (e *silentEngine) Stop() {
	e.logger.Debug("audio stop", "source", e.source)
}

// Seek moves the engine to the given position.
func (e *silentEngine) Seek(seconds int) {
	e.logger.Debug("audio seek", "source", e.source, "seconds", seconds)
}

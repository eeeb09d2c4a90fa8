package services

import (
	"context"
	"log/slog"

	"github.com/ewalden/drift/internal/domain"
	"github.com/ewalden/drift/internal/ports"
)

// PlayerService owns the active session slot. At most one player exists at a
// time; activating a new session closes the previous one first.
type PlayerService struct {
	audio  ports.AudioEngine
	outbox *Outbox
	config domain.PlayerConfig
	logger *slog.Logger

	active *domain.Player
}

// Ensure PlayerService implements ports.SessionHost.
var _ ports.SessionHost = (*PlayerService)(nil)

// NewPlayerService creates a player service.
func NewPlayerService(audio ports.AudioEngine, outbox *Outbox, config domain.PlayerConfig, logger *slog.Logger) *PlayerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerService{
		audio:  audio,
		outbox: outbox,
		config: config,
		logger: logger,
	}
}

// Activate builds a player for the given library item and starts playback.
// Any previously active player is closed first.
func (s *PlayerService) Activate(ctx context.Context, item *domain.LibraryItem) (*domain.Player, error) {
	if item == nil {
		return nil, domain.ErrNoActiveSession
	}
	if s.active != nil && !s.active.Closed() {
		s.active.RequestClose()
	}

	session := domain.NewPlaybackSession(*item)
	player := domain.NewPlayer(session, s.config, s.outbox.Enqueue)
	player.SetEvents(domain.PlayerEvents{
		AudioPlay:  s.audio.Play,
		AudioPause: s.audio.Pause,
		AudioSeek:  s.audio.Seek,
		AudioStop:  s.audio.Stop,
		Closed: func(discarded bool) {
			s.active = nil
		},
	})

	// A load failure degrades to a silent session; the clock still runs.
	if err := s.audio.Load(ctx, item.SourceRef); err != nil {
		s.logger.Warn("audio load failed, continuing without playback",
			"source", item.SourceRef,
			"error", err)
	}

	s.active = player
	player.Play()
	return player, nil
}

// Active returns the current player, nil when no session is active.
func (s *PlayerService) Active() *domain.Player {
	return s.active
}

// Close releases the active session slot.
func (s *PlayerService) Close() {
	if s.active != nil {
		s.active.RequestClose()
		s.active = nil
	}
}

package domain

import (
	"errors"
	"time"
)

// PlayState represents the playback state of a session.
type PlayState string

const (
	PlayStateReady    PlayState = "ready"
	PlayStatePlaying  PlayState = "playing"
	PlayStatePaused   PlayState = "paused"
	PlayStateFinished PlayState = "finished"
)

// Domain-level sentinel errors.
var (
	ErrNoActiveSession      = errors.New("no active session")
	ErrSessionAlreadyActive = errors.New("a session is already active")
	ErrRatingOutOfRange     = errors.New("rating must be between 0 and 10")
)

// PlaybackSession is the active unit being played. Exactly one exists at a
// time; activating a new one implicitly destroys the previous.
type PlaybackSession struct {
	ID              string
	LibraryID       string
	Title           string
	Guide           string
	SourceRef       string
	DurationSeconds int
	ElapsedSeconds  int
	State           PlayState
	StartedAt       time.Time
}

// NewPlaybackSession creates a session for a library item, starting at Ready.
func NewPlaybackSession(item LibraryItem) *PlaybackSession {
	dur := item.DurationSeconds
	if dur < 0 {
		dur = 0
	}
	return &PlaybackSession{
		ID:              generateID(),
		LibraryID:       item.ID,
		Title:           item.Title,
		Guide:           item.Guide,
		SourceRef:       item.SourceRef,
		DurationSeconds: dur,
		State:           PlayStateReady,
		StartedAt:       time.Now(),
	}
}

// Play transitions Ready or Paused to Playing. Finished is terminal.
func (s *PlaybackSession) Play() {
	if s.State != PlayStateReady && s.State != PlayStatePaused {
		return
	}
	s.State = PlayStatePlaying
}

// Pause transitions Playing to Paused.
func (s *PlaybackSession) Pause() {
	if s.State != PlayStatePlaying {
		return
	}
	s.State = PlayStatePaused
}

// Finish moves the session to its terminal state. No transition leaves
// Finished except destroying the session.
func (s *PlaybackSession) Finish() {
	if s.State == PlayStateFinished {
		return
	}
	s.State = PlayStateFinished
}

// IsPlaying returns true while the clock should be advancing.
func (s *PlaybackSession) IsPlaying() bool {
	return s.State == PlayStatePlaying
}

// IsFinished returns true once the session reached its terminal state.
func (s *PlaybackSession) IsFinished() bool {
	return s.State == PlayStateFinished
}

// Progress returns elapsed/duration in [0, 1].
func (s *PlaybackSession) Progress() float64 {
	if s.DurationSeconds == 0 {
		return 0
	}
	p := float64(s.ElapsedSeconds) / float64(s.DurationSeconds)
	if p > 1 {
		return 1
	}
	return p
}

// ElapsedMinutes returns the elapsed time in fractional minutes, the unit
// stored on completed-session records.
func (s *PlaybackSession) ElapsedMinutes() float64 {
	return float64(s.ElapsedSeconds) / 60
}

// GetPlayStateLabel returns a human-readable label for the play state.
func GetPlayStateLabel(st PlayState) string {
	switch st {
	case PlayStateReady:
		return "Ready"
	case PlayStatePlaying:
		return "Playing"
	case PlayStatePaused:
		return "Paused"
	case PlayStateFinished:
		return "Finished"
	default:
		return "Unknown"
	}
}

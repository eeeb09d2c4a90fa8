package domain

import "testing"

func TestNewPlaybackSession(t *testing.T) {
	item := LibraryItem{ID: "lib-1", Title: "Evening Wind-Down", Guide: "M. Osei", SourceRef: "audio/evening.mp3", DurationSeconds: 600}
	s := NewPlaybackSession(item)

	if s.ID == "" {
		t.Error("session ID is empty")
	}
	if s.State != PlayStateReady {
		t.Errorf("initial state = %v, want ready", s.State)
	}
	if s.DurationSeconds != 600 {
		t.Errorf("duration = %d, want 600", s.DurationSeconds)
	}
	if s.ElapsedSeconds != 0 {
		t.Errorf("elapsed = %d, want 0", s.ElapsedSeconds)
	}
	if s.LibraryID != "lib-1" {
		t.Errorf("library id = %q, want lib-1", s.LibraryID)
	}
}

func TestPlaybackSession_Transitions(t *testing.T) {
	t.Run("ready to playing", func(t *testing.T) {
		s := newTestSession(60)
		s.Play()
		if s.State != PlayStatePlaying {
			t.Errorf("state = %v, want playing", s.State)
		}
	})

	t.Run("playing pauses and resumes", func(t *testing.T) {
		s := newTestSession(60)
		s.Play()
		s.Pause()
		if s.State != PlayStatePaused {
			t.Errorf("state = %v, want paused", s.State)
		}
		s.Play()
		if s.State != PlayStatePlaying {
			t.Errorf("state = %v, want playing", s.State)
		}
	})

	t.Run("pause from ready is a no-op", func(t *testing.T) {
		s := newTestSession(60)
		s.Pause()
		if s.State != PlayStateReady {
			t.Errorf("state = %v, want ready", s.State)
		}
	})

	t.Run("finished is terminal", func(t *testing.T) {
		s := newTestSession(60)
		s.Play()
		s.Finish()
		s.Play()
		s.Pause()
		if s.State != PlayStateFinished {
			t.Errorf("state = %v, want finished", s.State)
		}
	})
}

func TestPlaybackSession_NegativeDurationClamped(t *testing.T) {
	s := NewPlaybackSession(LibraryItem{DurationSeconds: -30})
	if s.DurationSeconds != 0 {
		t.Errorf("duration = %d, want 0", s.DurationSeconds)
	}
}

func TestPlaybackSession_ElapsedMinutes(t *testing.T) {
	s := newTestSession(600)
	s.ElapsedSeconds = 90
	if got := s.ElapsedMinutes(); got != 1.5 {
		t.Errorf("ElapsedMinutes() = %v, want 1.5", got)
	}
}

func TestPlaybackSession_Progress(t *testing.T) {
	s := newTestSession(200)
	s.ElapsedSeconds = 50
	if got := s.Progress(); got != 0.25 {
		t.Errorf("Progress() = %v, want 0.25", got)
	}

	zero := newTestSession(0)
	if got := zero.Progress(); got != 0 {
		t.Errorf("zero-duration Progress() = %v, want 0", got)
	}
}

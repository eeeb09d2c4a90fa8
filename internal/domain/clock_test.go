package domain

import "testing"

func newTestSession(duration int) *PlaybackSession {
	item := LibraryItem{ID: "lib-1", Title: "Morning Calm", Guide: "A. Rivera", DurationSeconds: duration}
	return NewPlaybackSession(item)
}

func TestClock_TickAdvancesWhilePlaying(t *testing.T) {
	s := newTestSession(300)
	c := NewClock(s)

	c.Tick()
	if s.ElapsedSeconds != 0 {
		t.Errorf("tick before start advanced clock: elapsed = %d, want 0", s.ElapsedSeconds)
	}

	c.Start()
	c.Tick()
	c.Tick()
	if s.ElapsedSeconds != 2 {
		t.Errorf("elapsed = %d, want 2", s.ElapsedSeconds)
	}

	c.Pause()
	c.Tick()
	if s.ElapsedSeconds != 2 {
		t.Errorf("tick while paused advanced clock: elapsed = %d, want 2", s.ElapsedSeconds)
	}
}

func TestClock_TickFinishesAtDuration(t *testing.T) {
	s := newTestSession(3)
	c := NewClock(s)
	finished := false
	c.SetOnFinish(func() { finished = true })

	c.Start()
	c.Tick()
	c.Tick()
	c.Tick()

	if s.ElapsedSeconds != 3 {
		t.Errorf("elapsed = %d, want 3", s.ElapsedSeconds)
	}
	if s.State != PlayStateFinished {
		t.Errorf("state = %v, want finished", s.State)
	}
	if !finished {
		t.Error("onFinish hook not fired")
	}

	// Finished is terminal.
	c.Tick()
	if s.ElapsedSeconds != 3 {
		t.Errorf("tick after finish advanced clock: elapsed = %d", s.ElapsedSeconds)
	}
	c.Start()
	if s.State != PlayStateFinished {
		t.Errorf("start after finish changed state to %v", s.State)
	}
}

func TestClock_SeekClamps(t *testing.T) {
	tests := []struct {
		name        string
		seek        int
		wantElapsed int
		wantState   PlayState
	}{
		{"within range", 120, 120, PlayStatePlaying},
		{"negative", -5, 0, PlayStatePlaying},
		{"past end", 305, 300, PlayStateFinished},
		{"exactly end", 300, 300, PlayStateFinished},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(300)
			c := NewClock(s)
			c.Start()

			c.Seek(tt.seek)

			if s.ElapsedSeconds != tt.wantElapsed {
				t.Errorf("elapsed = %d, want %d", s.ElapsedSeconds, tt.wantElapsed)
			}
			if s.State != tt.wantState {
				t.Errorf("state = %v, want %v", s.State, tt.wantState)
			}
		})
	}
}

func TestClock_SeekFiresOnSeek(t *testing.T) {
	s := newTestSession(300)
	c := NewClock(s)
	c.Start()

	var seen []int
	c.SetOnSeek(func(sec int) { seen = append(seen, sec) })

	c.Seek(42)
	c.Seek(-1)
	c.Seek(999)

	want := []int{42, 0, 300}
	if len(seen) != len(want) {
		t.Fatalf("onSeek fired %d times, want %d", len(seen), len(want))
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("onSeek[%d] = %d, want %d", i, seen[i], want[i])
		}
	}
}

func TestClock_SeekAfterFinishIsNoop(t *testing.T) {
	s := newTestSession(10)
	c := NewClock(s)
	c.Start()
	c.Seek(10)

	c.Seek(5)
	if s.ElapsedSeconds != 10 {
		t.Errorf("seek after finish moved clock: elapsed = %d, want 10", s.ElapsedSeconds)
	}
}

func TestClock_ZeroDurationFinishesImmediately(t *testing.T) {
	s := newTestSession(0)
	c := NewClock(s)
	c.Start()
	c.Tick()

	if s.ElapsedSeconds != 0 {
		t.Errorf("elapsed = %d, want 0", s.ElapsedSeconds)
	}
	if s.State != PlayStateFinished {
		t.Errorf("state = %v, want finished", s.State)
	}
}

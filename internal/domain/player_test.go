package domain

import "testing"

func newTestPlayer(t *testing.T, duration int) (*Player, *[]PersistRequest) {
	t.Helper()
	s := newTestSession(duration)
	var emitted []PersistRequest
	p := NewPlayer(s, DefaultPlayerConfig(), func(r PersistRequest) { emitted = append(emitted, r) })
	p.SetTrackWidth(100)
	return p, &emitted
}

func TestPlayer_SkipPastEndFinishes(t *testing.T) {
	// Scenario A: duration=300, seek(305) ⇒ elapsed=300, state=Finished.
	p, _ := newTestPlayer(t, 300)
	p.Play()

	p.Clock.Seek(305)

	if p.Session.ElapsedSeconds != 300 {
		t.Errorf("elapsed = %d, want 300", p.Session.ElapsedSeconds)
	}
	if p.Session.State != PlayStateFinished {
		t.Errorf("state = %v, want finished", p.Session.State)
	}
	if p.Pipeline.Stage() != StageSummary {
		t.Errorf("pipeline stage = %v, want summary", p.Pipeline.Stage())
	}
}

func TestPlayer_IdleEntersAmbientAndTapExits(t *testing.T) {
	// Scenario D: 10s playing with no interaction ⇒ ambient; one tap ⇒ not.
	p, _ := newTestPlayer(t, 300)
	p.Play()

	for i := 0; i < 10; i++ {
		p.Tick()
	}
	if !p.Ambient.Active() {
		t.Fatal("ambient not active after 10 idle seconds")
	}

	if exited := p.BackgroundTap(); !exited {
		t.Error("tap should exit ambient mode")
	}
	if p.Ambient.Active() {
		t.Error("ambient still active after tap")
	}
}

func TestPlayer_IdleTimerOnlyRunsWhilePlaying(t *testing.T) {
	p, _ := newTestPlayer(t, 300)
	p.Play()
	for i := 0; i < 5; i++ {
		p.Tick()
	}
	p.Pause()
	for i := 0; i < 20; i++ {
		p.Tick()
	}
	if p.Ambient.Active() {
		t.Error("ambient activated while paused")
	}

	p.Play()
	for i := 0; i < 9; i++ {
		p.Tick()
	}
	if p.Ambient.Active() {
		t.Error("resume did not re-start the full quiet window")
	}
	p.Tick()
	if !p.Ambient.Active() {
		t.Error("ambient not active 10s after resume")
	}
}

func TestPlayer_GesturesResetIdleWindow(t *testing.T) {
	p, _ := newTestPlayer(t, 300)
	p.Play()

	for i := 0; i < 9; i++ {
		p.Tick()
	}
	p.ScrubDragStart()
	p.ScrubDragUpdate(5)
	p.ScrubDragEnd()
	for i := 0; i < 9; i++ {
		p.Tick()
	}
	if p.Ambient.Active() {
		t.Error("ambient entered within 10s of a scrub gesture")
	}

	p.MoodDragStart()
	p.MoodDragEnd()
	for i := 0; i < 9; i++ {
		p.Tick()
	}
	if p.Ambient.Active() {
		t.Error("ambient entered within 10s of a mood gesture")
	}
}

func TestPlayer_PauseCancelsCountdownSilently(t *testing.T) {
	p, emitted := newTestPlayer(t, 300)
	p.Play()

	p.MoodDragStart()
	p.MoodDragUpdate(30)
	p.MoodDragEnd()
	if p.Feedback.Pending() == nil {
		t.Fatal("setup: no confirmation armed")
	}

	p.Pause()

	if p.Feedback.Pending() != nil {
		t.Error("pause left the countdown running")
	}
	if p.Feedback.Ack() != AckNone {
		t.Errorf("pause raised ack %v, want none", p.Feedback.Ack())
	}
	for i := 0; i < 5; i++ {
		p.Tick()
	}
	if len(p.Feedback.History()) != 0 || len(*emitted) != 0 {
		t.Error("cancelled countdown still committed an entry")
	}
}

func TestPlayer_NaturalFinishCancelsCountdown(t *testing.T) {
	p, emitted := newTestPlayer(t, 2)
	p.Play()

	p.MoodDragStart()
	p.MoodDragUpdate(30)
	p.MoodDragEnd()

	// The clock finishes before the 3-second countdown completes; leaving
	// Playing discards the confirmation.
	p.Tick()
	p.Tick()
	p.Tick()

	if len(*emitted) != 0 {
		t.Errorf("emitted %d requests, want 0", len(*emitted))
	}
	if p.Pipeline.Stage() != StageSummary {
		t.Errorf("pipeline stage = %v, want summary", p.Pipeline.Stage())
	}
}

func TestPlayer_UninterruptedCountdownCommitsOnce(t *testing.T) {
	p, emitted := newTestPlayer(t, 300)
	p.Play()
	p.Tick()
	p.Tick()

	p.MoodDragStart()
	p.MoodDragUpdate(44) // center 50 → 94, great bucket
	p.MoodDragEnd()
	p.Tick()
	p.Tick()
	p.Tick()

	entries := p.Feedback.History()
	if len(entries) != 1 {
		t.Fatalf("committed %d entries, want 1", len(entries))
	}
	if entries[0].Label != FeedbackGreat {
		t.Errorf("label = %v, want great", entries[0].Label)
	}
	if entries[0].TimestampSeconds != 2 {
		t.Errorf("timestamp = %d, want 2 (release time)", entries[0].TimestampSeconds)
	}
	if len(*emitted) != 1 {
		t.Errorf("emitted %d requests, want 1", len(*emitted))
	}
}

func TestPlayer_FinishThenDiscard(t *testing.T) {
	// Scenario E: committed feedback survives a discard; the completed-session
	// record and rating are never written.
	p, emitted := newTestPlayer(t, 300)
	p.Play()

	p.MoodDragStart()
	p.MoodDragUpdate(30)
	p.MoodDragEnd()
	p.Tick()
	p.Tick()
	p.Tick()
	if len(*emitted) != 1 {
		t.Fatalf("setup: feedback entry not committed")
	}

	p.FinishNow()
	if p.Pipeline.Stage() != StageSummary {
		t.Fatalf("stage = %v, want summary", p.Pipeline.Stage())
	}
	p.Pipeline.Discard()

	if !p.Closed() {
		t.Error("player not closed after discard")
	}
	if len(*emitted) != 1 {
		t.Errorf("discard wrote %d extra requests", len(*emitted)-1)
	}
	if (*emitted)[0].Kind != PersistFeedbackEntry {
		t.Errorf("surviving request kind = %v, want feedback entry", (*emitted)[0].Kind)
	}
}

func TestPlayer_FinishRateAndClose(t *testing.T) {
	p, emitted := newTestPlayer(t, 300)
	closed := false
	discardedFlag := true
	p.SetEvents(PlayerEvents{Closed: func(d bool) { closed = true; discardedFlag = d }})
	p.Play()
	for i := 0; i < 60; i++ {
		p.Tick()
	}

	p.FinishNow()
	p.Pipeline.Continue()
	if err := p.Pipeline.SubmitRating(9); err != nil {
		t.Fatalf("SubmitRating error = %v", err)
	}

	if !closed || discardedFlag {
		t.Errorf("closed = %v, discarded = %v; want closed without discard", closed, discardedFlag)
	}
	if len(*emitted) != 2 {
		t.Fatalf("emitted %d requests, want 2", len(*emitted))
	}
	if (*emitted)[0].Minutes != 1.0 {
		t.Errorf("minutes = %v, want 1.0", (*emitted)[0].Minutes)
	}
}

func TestPlayer_RequestCloseWhilePlayingDiscards(t *testing.T) {
	p, emitted := newTestPlayer(t, 300)
	var discarded *bool
	p.SetEvents(PlayerEvents{Closed: func(d bool) { discarded = &d }})
	p.Play()
	p.Tick()

	if ok := p.RequestClose(); !ok {
		t.Fatal("RequestClose while playing should close")
	}
	if discarded == nil || !*discarded {
		t.Error("close while playing should be a discard")
	}
	if len(*emitted) != 0 {
		t.Errorf("discard close wrote %d requests", len(*emitted))
	}
}

func TestPlayer_RequestCloseDuringRatingDefersToPipeline(t *testing.T) {
	p, _ := newTestPlayer(t, 300)
	p.Play()
	p.FinishNow()
	p.Pipeline.Continue()

	if ok := p.RequestClose(); ok {
		t.Error("RequestClose during rating should defer to the pipeline")
	}
	if p.Closed() {
		t.Error("player closed while rating collection was in progress")
	}
}

func TestPlayer_DragDuringCountdownWins(t *testing.T) {
	p, emitted := newTestPlayer(t, 300)
	p.Play()

	p.MoodDragStart()
	p.MoodDragUpdate(40)
	p.MoodDragEnd()
	p.Tick()
	p.Tick() // 1 second left

	p.MoodDragStart()
	p.MoodDragUpdate(-30)
	p.Tick()

	if len(p.Feedback.History()) != 0 {
		t.Errorf("committed %d entries, want 0 (new gesture wins)", len(p.Feedback.History()))
	}
	if len(*emitted) != 0 {
		t.Errorf("emitted %d requests, want 0", len(*emitted))
	}
}

func TestPlayer_SeekResetsIdleWindow(t *testing.T) {
	p, _ := newTestPlayer(t, 300)
	p.Play()
	for i := 0; i < 9; i++ {
		p.Tick()
	}
	p.SeekBy(30)
	for i := 0; i < 9; i++ {
		p.Tick()
	}
	if p.Ambient.Active() {
		t.Error("ambient entered within 10s of a seek")
	}
}

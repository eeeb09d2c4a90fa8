package domain

// PlayerConfig holds the interaction-core knobs.
type PlayerConfig struct {
	CountdownSeconds   int
	IdleTimeoutSeconds int
	AmbientEnabled     bool
}

// DefaultPlayerConfig returns the standard configuration.
func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		CountdownSeconds:   3,
		IdleTimeoutSeconds: 10,
		AmbientEnabled:     true,
	}
}

// PlayerEvents are fire-and-forget side-effect hooks. Audio engine calls are
// issued alongside clock transitions and never awaited for correctness.
type PlayerEvents struct {
	AudioPlay  func()
	AudioPause func()
	AudioSeek  func(seconds int)
	AudioStop  func()
	Closed     func(discarded bool)
}

// Player is the single authoritative state machine for one active session.
// All mutation happens through its transition methods on one logical writer
// (the UI event loop), so no locking is needed.
type Player struct {
	Session  *PlaybackSession
	Clock    *Clock
	Scrub    *ScrubController
	Feedback *FeedbackController
	Ambient  *AmbientController
	Pipeline *CompletionPipeline

	events PlayerEvents
	closed bool
}

// NewPlayer builds the aggregate and wires the cross-controller hooks:
// finishing cancels the countdown and enters the summary, seeks re-sync the
// scrub thumb and reset the idle window.
func NewPlayer(session *PlaybackSession, cfg PlayerConfig, sink func(PersistRequest)) *Player {
	clock := NewClock(session)
	p := &Player{
		Session:  session,
		Clock:    clock,
		Scrub:    NewScrubController(clock),
		Feedback: NewFeedbackController(session, clock, cfg.CountdownSeconds, sink),
		Ambient:  NewAmbientController(cfg.AmbientEnabled, cfg.IdleTimeoutSeconds),
		Pipeline: NewCompletionPipeline(session, sink),
	}
	clock.SetOnFinish(func() {
		p.Feedback.CancelSilent()
		p.Ambient.Disarm()
		p.Ambient.Deactivate()
		p.Pipeline.EnterSummary()
		if p.events.AudioStop != nil {
			p.events.AudioStop()
		}
	})
	clock.SetOnSeek(func(seconds int) {
		p.Scrub.SyncFromClock()
		p.Ambient.Reset()
		if p.events.AudioSeek != nil {
			p.events.AudioSeek(seconds)
		}
	})
	p.Pipeline.SetOnClosed(func(discarded bool) {
		p.closed = true
		p.Ambient.Disarm()
		p.Ambient.Deactivate()
		if p.events.Closed != nil {
			p.events.Closed(discarded)
		}
	})
	return p
}

// SetEvents registers the side-effect hooks.
func (p *Player) SetEvents(ev PlayerEvents) { p.events = ev }

// Play starts or resumes playback and arms the idle window.
func (p *Player) Play() {
	if p.Session.IsFinished() || p.closed {
		return
	}
	p.Clock.Start()
	if p.Session.IsPlaying() {
		p.Ambient.Arm()
		if p.events.AudioPlay != nil {
			p.events.AudioPlay()
		}
	}
}

// Pause suspends playback. The pending countdown is cancelled synchronously
// before the state leaves Playing, and the idle timer is torn down.
func (p *Player) Pause() {
	if !p.Session.IsPlaying() {
		return
	}
	p.Feedback.CancelSilent()
	p.Clock.Pause()
	p.Ambient.Disarm()
	p.Ambient.Deactivate()
	if p.events.AudioPause != nil {
		p.events.AudioPause()
	}
}

// TogglePause flips between Playing and Paused.
func (p *Player) TogglePause() {
	if p.Session.IsPlaying() {
		p.Pause()
	} else {
		p.Play()
	}
}

// Tick drives all recurring timers from the one-second tick source: the
// playback clock, the commit countdown, and the idle window. Ticks outside
// Playing are ignored; if this tick finishes the session, the finish hook
// has already cancelled the countdown before the guards below run.
func (p *Player) Tick() {
	if !p.Session.IsPlaying() {
		return
	}
	p.Clock.Tick()
	if !p.Session.IsPlaying() {
		return
	}
	p.Feedback.TickCountdown()
	p.Ambient.Tick()
}

// SeekBy seeks relative to the current position (keyboard scrubbing).
func (p *Player) SeekBy(deltaSeconds int) {
	p.Clock.Seek(p.Clock.Elapsed() + deltaSeconds)
}

// FinishNow is the explicit finish action. The summary keeps the actual
// elapsed time rather than jumping to the full duration.
func (p *Player) FinishNow() {
	p.Clock.Finish()
}

// ScrubDragStart begins a scrub gesture; it counts as an interaction.
func (p *Player) ScrubDragStart() {
	p.Ambient.Reset()
	p.Scrub.DragStart()
}

// ScrubDragUpdate forwards a scrub drag delta.
func (p *Player) ScrubDragUpdate(deltaX float64) { p.Scrub.DragUpdate(deltaX) }

// ScrubDragEnd releases the scrub gesture.
func (p *Player) ScrubDragEnd() { p.Scrub.DragEnd() }

// MoodDragStart begins a mood gesture; it counts as an interaction and
// discards any pending confirmation.
func (p *Player) MoodDragStart() {
	p.Ambient.Reset()
	p.Feedback.DragStart()
}

// MoodDragUpdate forwards a mood drag delta.
func (p *Player) MoodDragUpdate(deltaX float64) { p.Feedback.DragUpdate(deltaX) }

// MoodDragEnd releases the mood gesture, arming the commit countdown.
func (p *Player) MoodDragEnd() { p.Feedback.DragEnd() }

// MoodCancel is the explicit cancel control for a pending confirmation.
func (p *Player) MoodCancel() { p.Feedback.Cancel() }

// BackgroundTap exits ambient mode or resets the idle window. Returns true
// when the tap exited ambient mode.
func (p *Player) BackgroundTap() bool {
	if !p.Session.IsPlaying() {
		return false
	}
	return p.Ambient.Tap()
}

// SetTrackWidth propagates the measured bar width to both gesture tracks.
func (p *Player) SetTrackWidth(w float64) {
	p.Scrub.SetTrackWidth(w)
	p.Feedback.SetTrackWidth(w)
}

// RequestClose handles an external close. While Playing or Paused it is a
// discard with no persistence; once the pipeline is past the summary its own
// Discard/Continue choice governs instead. Returns true when the player
// closed.
func (p *Player) RequestClose() bool {
	if p.closed {
		return true
	}
	switch p.Pipeline.Stage() {
	case StageNone, StageSummary:
		p.Feedback.CancelSilent()
		p.Session.Finish()
		p.Pipeline.EnterSummary()
		p.Pipeline.Discard()
		if p.events.AudioStop != nil {
			p.events.AudioStop()
		}
		return true
	default:
		return false
	}
}

// Closed reports whether the pipeline reached its terminal stage.
func (p *Player) Closed() bool { return p.closed }

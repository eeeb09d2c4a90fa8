package domain

// Clock owns the session's elapsed/duration time at one-second granularity.
// It is deliberately decoupled from the audio engine's decode position: the
// tick source drives it, engine calls are side effects issued elsewhere.
type Clock struct {
	session  *PlaybackSession
	onFinish func()
	onSeek   func(seconds int)
}

// NewClock creates a clock bound to the given session.
func NewClock(session *PlaybackSession) *Clock {
	return &Clock{session: session}
}

// SetOnFinish registers the completion hook, fired exactly once when the
// clock reaches the session duration (naturally or via seek-to-end).
func (c *Clock) SetOnFinish(fn func()) { c.onFinish = fn }

// SetOnSeek registers the seek hook. Every seek fires it so the scrub thumb
// stays in sync and the idle timer resets.
func (c *Clock) SetOnSeek(fn func(seconds int)) { c.onSeek = fn }

// Start begins or resumes playback.
func (c *Clock) Start() {
	c.session.Play()
}

// Pause suspends playback. Ticks while paused are ignored.
func (c *Clock) Pause() {
	c.session.Pause()
}

// Tick advances the clock by one second while playing. Reaching the duration
// clamps and finishes the session.
func (c *Clock) Tick() {
	if !c.session.IsPlaying() {
		return
	}
	c.session.ElapsedSeconds++
	if c.session.ElapsedSeconds >= c.session.DurationSeconds {
		c.session.ElapsedSeconds = c.session.DurationSeconds
		c.finish()
	}
}

// Seek moves the clock to t seconds, clamped to [0, duration]. Seeking to or
// past the end is equivalent to natural completion, not a no-op.
func (c *Clock) Seek(t int) {
	if c.session.IsFinished() {
		return
	}
	if t < 0 {
		t = 0
	}
	if t >= c.session.DurationSeconds {
		c.session.ElapsedSeconds = c.session.DurationSeconds
		if c.onSeek != nil {
			c.onSeek(c.session.ElapsedSeconds)
		}
		c.finish()
		return
	}
	c.session.ElapsedSeconds = t
	if c.onSeek != nil {
		c.onSeek(t)
	}
}

// Finish ends the session at the current elapsed time, the explicit finish
// action. Unlike a seek-to-end it does not move the clock.
func (c *Clock) Finish() {
	if c.session.IsFinished() {
		return
	}
	c.finish()
}

func (c *Clock) finish() {
	c.session.Finish()
	if c.onFinish != nil {
		c.onFinish()
	}
}

// Elapsed returns the elapsed seconds.
func (c *Clock) Elapsed() int { return c.session.ElapsedSeconds }

// Duration returns the session duration in seconds.
func (c *Clock) Duration() int { return c.session.DurationSeconds }

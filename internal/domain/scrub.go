package domain

import "math"

// ScrubController maps a single horizontal drag on the progress track to a
// playback position. Scrubbing is live: every update seeks the clock.
type ScrubController struct {
	clock      *Clock
	trackWidth float64
	pos        float64
	baseline   float64
	dragging   bool
}

// NewScrubController creates a scrub controller over the given clock.
func NewScrubController(clock *Clock) *ScrubController {
	return &ScrubController{clock: clock}
}

// SetTrackWidth records the measured track width. Until the host layout has
// measured it, all gesture callbacks are no-ops.
func (s *ScrubController) SetTrackWidth(w float64) {
	if w <= 0 {
		return
	}
	s.trackWidth = w
	if !s.dragging {
		s.SyncFromClock()
	}
}

// TrackWidth returns the measured track width, 0 if unmeasured.
func (s *ScrubController) TrackWidth() float64 { return s.trackWidth }

// DragStart captures the current thumb position as the gesture baseline.
// The baseline, not the raw pointer offset, anchors the gesture so it is
// resumable after brief freezes.
func (s *ScrubController) DragStart() {
	if s.trackWidth <= 0 {
		return
	}
	s.SyncFromClock()
	s.dragging = true
	s.baseline = s.pos
}

// DragUpdate moves the thumb by deltaX from the baseline and seeks the clock.
func (s *ScrubController) DragUpdate(deltaX float64) {
	if !s.dragging || s.trackWidth <= 0 {
		return
	}
	s.pos = clamp(s.baseline+deltaX, 0, s.trackWidth)
	secs := int(math.Round(s.pos / s.trackWidth * float64(s.clock.Duration())))
	s.clock.Seek(secs)
}

// DragEnd releases gesture ownership; the clock continues from the last
// sought position.
func (s *ScrubController) DragEnd() {
	s.dragging = false
}

// Dragging reports whether a drag currently owns the thumb.
func (s *ScrubController) Dragging() bool { return s.dragging }

// Position returns the rendered thumb position. While a drag is active the
// gesture position is authoritative; the tick never overwrites it.
func (s *ScrubController) Position() float64 {
	if s.dragging || s.trackWidth <= 0 {
		return s.pos
	}
	if d := s.clock.Duration(); d > 0 {
		return float64(s.clock.Elapsed()) / float64(d) * s.trackWidth
	}
	return 0
}

// SyncFromClock re-derives the thumb position from the clock. Called after
// seeks that did not originate from this gesture; ignored mid-drag.
func (s *ScrubController) SyncFromClock() {
	if s.dragging || s.trackWidth <= 0 {
		return
	}
	if d := s.clock.Duration(); d > 0 {
		s.pos = float64(s.clock.Elapsed()) / float64(d) * s.trackWidth
	} else {
		s.pos = 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package domain

import (
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// FeedbackLabel is one of five discrete emotional categories derived from a
// continuous gesture position on the mood bar.
type FeedbackLabel string

const (
	FeedbackBad   FeedbackLabel = "bad"
	FeedbackMeh   FeedbackLabel = "meh"
	FeedbackOkay  FeedbackLabel = "okay"
	FeedbackGood  FeedbackLabel = "good"
	FeedbackGreat FeedbackLabel = "great"
)

// FeedbackLabels lists all labels in ascending order.
var FeedbackLabels = []FeedbackLabel{FeedbackBad, FeedbackMeh, FeedbackOkay, FeedbackGood, FeedbackGreat}

// LabelForProgress buckets progress into five equal-width bins.
func LabelForProgress(p float64) FeedbackLabel {
	switch {
	case p < 0.2:
		return FeedbackBad
	case p < 0.4:
		return FeedbackMeh
	case p < 0.6:
		return FeedbackOkay
	case p < 0.8:
		return FeedbackGood
	default:
		return FeedbackGreat
	}
}

// RatingForProgress derives the 1-5 rating integer, consistent with but
// independent of the label bucket.
func RatingForProgress(p float64) int {
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	return int(math.Round(p*4)) + 1
}

// GetFeedbackLabelText returns a display string for a label.
func GetFeedbackLabelText(l FeedbackLabel) string {
	switch l {
	case FeedbackBad:
		return "Bad"
	case FeedbackMeh:
		return "Meh"
	case FeedbackOkay:
		return "Okay"
	case FeedbackGood:
		return "Good"
	case FeedbackGreat:
		return "Great"
	default:
		return "Unknown"
	}
}

// defaultMoodPalette is the fixed ordered 9-stop palette the mood color is
// interpolated over, low mood to high.
var defaultMoodPalette = []string{
	"#D64545", "#E06C4F", "#E8925A", "#EDB564", "#F0D56E",
	"#C9D06B", "#9FC96A", "#74BF6B", "#4BB36C",
}

// MoodColorAt linearly interpolates the palette at progress p in [0, 1].
// Purely presentational derived state; recomputed per update, never stored.
func MoodColorAt(palette []string, p float64) colorful.Color {
	if len(palette) == 0 {
		palette = defaultMoodPalette
	}
	if p < 0 {
		p = 0
	}
	if p > 1 {
		p = 1
	}
	if len(palette) == 1 {
		c, _ := colorful.Hex(palette[0])
		return c
	}
	scaled := p * float64(len(palette)-1)
	i := int(scaled)
	if i >= len(palette)-1 {
		i = len(palette) - 2
	}
	lo, _ := colorful.Hex(palette[i])
	hi, _ := colorful.Hex(palette[i+1])
	return lo.BlendRgb(hi, scaled-float64(i))
}

// DefaultMoodPalette returns a copy of the built-in palette.
func DefaultMoodPalette() []string {
	out := make([]string, len(defaultMoodPalette))
	copy(out, defaultMoodPalette)
	return out
}

// AckKind is a transient, presentational acknowledgment raised by the
// feedback controller.
type AckKind int

const (
	AckNone AckKind = iota
	AckSaved
	AckCanceled
)

// CommitConfirmation is the delayed-commit envelope between gesture release
// and a committed entry. At most one exists at a time.
type CommitConfirmation struct {
	Label              FeedbackLabel
	Position           float64
	RemainingSeconds   int
	SessionTimeSeconds int
}

// CommittedFeedbackEntry is immutable once created. Its timestamp is the
// clock reading captured when the countdown started, not when it finished.
type CommittedFeedbackEntry struct {
	ID               string
	SessionID        string
	Label            FeedbackLabel
	TimestampSeconds int
	Date             time.Time
}

// FeedbackController maps a horizontal drag on the mood bar to a label and
// runs the delayed-commit protocol: release arms a countdown that either
// auto-confirms an entry or is cancelled by a new drag, a pause, or an
// explicit cancel.
type FeedbackController struct {
	session          *PlaybackSession
	clock            *Clock
	countdownSeconds int
	thumbRadius      float64

	trackWidth float64
	pos        float64
	baseline   float64
	dragging   bool
	moved      bool

	pending *CommitConfirmation
	ack     AckKind
	history []CommittedFeedbackEntry

	now  func() time.Time
	emit func(PersistRequest)
}

// NewFeedbackController creates a feedback controller for the session.
// emit may be nil; committed entries are then kept in memory only.
func NewFeedbackController(session *PlaybackSession, clock *Clock, countdownSeconds int, emit func(PersistRequest)) *FeedbackController {
	if countdownSeconds <= 0 {
		countdownSeconds = 3
	}
	return &FeedbackController{
		session:          session,
		clock:            clock,
		countdownSeconds: countdownSeconds,
		thumbRadius:      0.5,
		now:              time.Now,
		emit:             emit,
	}
}

// SetTrackWidth records the measured mood bar width and centers the thumb on
// first measurement. Gesture callbacks are no-ops until it is set.
func (f *FeedbackController) SetTrackWidth(w float64) {
	if w <= 0 {
		return
	}
	first := f.trackWidth <= 0
	scale := 0.0
	if !first {
		scale = f.pos / f.trackWidth
	}
	f.trackWidth = w
	if first || f.dragging {
		if first {
			f.pos = w / 2
		}
		return
	}
	f.pos = f.clampPos(scale * w)
}

// TrackWidth returns the measured bar width, 0 if unmeasured.
func (f *FeedbackController) TrackWidth() float64 { return f.trackWidth }

// DragStart begins a mood gesture. A pending confirmation is always
// discarded unconditionally, even one tick from confirming; the newer
// gesture wins and nothing is committed.
func (f *FeedbackController) DragStart() {
	if f.trackWidth <= 0 {
		return
	}
	if f.pending != nil {
		f.discardPending()
	}
	f.dragging = true
	f.moved = false
	f.baseline = f.pos
}

// DragUpdate moves the thumb by deltaX from the gesture baseline.
func (f *FeedbackController) DragUpdate(deltaX float64) {
	if !f.dragging || f.trackWidth <= 0 {
		return
	}
	f.pos = f.clampPos(f.baseline + deltaX)
	f.moved = true
}

// DragEnd releases the gesture. If the thumb moved at least once, a
// confirmation is armed with the clock reading at release as its timestamp.
func (f *FeedbackController) DragEnd() {
	if !f.dragging {
		return
	}
	f.dragging = false
	if !f.moved {
		return
	}
	f.pending = &CommitConfirmation{
		Label:              LabelForProgress(f.Progress()),
		Position:           f.pos,
		RemainingSeconds:   f.countdownSeconds,
		SessionTimeSeconds: f.clock.Elapsed(),
	}
}

// TickCountdown advances the pending confirmation by one second, confirming
// when it reaches zero.
func (f *FeedbackController) TickCountdown() {
	if f.pending == nil {
		return
	}
	f.pending.RemainingSeconds--
	if f.pending.RemainingSeconds <= 0 {
		f.confirm()
	}
}

// Cancel is the explicit user cancel. It discards the pending confirmation
// and raises a Canceled acknowledgment.
func (f *FeedbackController) Cancel() {
	if f.pending == nil {
		return
	}
	f.discardPending()
	f.ack = AckCanceled
}

// CancelSilent discards the pending confirmation without acknowledgment.
// Used when a new drag starts or playback leaves Playing.
func (f *FeedbackController) CancelSilent() {
	if f.pending == nil {
		return
	}
	f.discardPending()
}

func (f *FeedbackController) confirm() {
	entry := CommittedFeedbackEntry{
		ID:               generateID(),
		SessionID:        f.session.ID,
		Label:            f.pending.Label,
		TimestampSeconds: f.pending.SessionTimeSeconds,
		Date:             f.now(),
	}
	// Local history is appended regardless of persistence outcome: a failed
	// remote write never blocks local visibility.
	f.history = append(f.history, entry)
	if f.emit != nil {
		f.emit(PersistRequest{
			Kind:             PersistFeedbackEntry,
			SessionID:        entry.SessionID,
			Label:            entry.Label,
			TimestampSeconds: entry.TimestampSeconds,
		})
	}
	f.pending = nil
	f.pos = f.trackWidth / 2
	f.ack = AckSaved
}

func (f *FeedbackController) discardPending() {
	f.pending = nil
	f.pos = f.trackWidth / 2
}

func (f *FeedbackController) clampPos(p float64) float64 {
	return clamp(p, f.thumbRadius, f.trackWidth-f.thumbRadius)
}

// Progress returns the thumb position as a fraction of the track width.
func (f *FeedbackController) Progress() float64 {
	if f.trackWidth <= 0 {
		return 0.5
	}
	return f.pos / f.trackWidth
}

// Position returns the rendered thumb position.
func (f *FeedbackController) Position() float64 { return f.pos }

// Dragging reports whether a mood gesture is active.
func (f *FeedbackController) Dragging() bool { return f.dragging }

// Label returns the label the current thumb position resolves to.
func (f *FeedbackController) Label() FeedbackLabel {
	return LabelForProgress(f.Progress())
}

// Pending returns the active confirmation, nil when none is armed.
func (f *FeedbackController) Pending() *CommitConfirmation { return f.pending }

// History returns the entries committed during this session.
func (f *FeedbackController) History() []CommittedFeedbackEntry { return f.history }

// Ack returns the current transient acknowledgment.
func (f *FeedbackController) Ack() AckKind { return f.ack }

// ClearAck dismisses the acknowledgment once its banner timer expires.
func (f *FeedbackController) ClearAck() { f.ack = AckNone }

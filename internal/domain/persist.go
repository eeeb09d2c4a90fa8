package domain

// PersistKind discriminates outbox requests.
type PersistKind string

const (
	PersistFeedbackEntry PersistKind = "feedback_entry"
	PersistSessionRecord PersistKind = "session_record"
	PersistRating        PersistKind = "rating"
)

// PersistRequest is an outbound write emitted by the state machines. The
// outbox drains these asynchronously through the gateway; a failure is
// logged and never reaches back into UI state.
type PersistRequest struct {
	Kind             PersistKind
	SessionID        string
	Label            FeedbackLabel
	TimestampSeconds int
	Minutes          float64
	Rating           int
}

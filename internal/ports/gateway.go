package ports

import "context"

// Gateway is the persistence gateway the player core writes through. The
// three calls are independently fallible; callers must not assume ordering
// or atomicity across them, and a failure never reverses UI state already
// rendered.
type Gateway interface {
	// SaveCompletedSession writes the completed-session record. Elapsed time
	// is expressed in fractional minutes.
	SaveCompletedSession(ctx context.Context, userID, sessionID string, minutes float64, module string) error

	// SaveRating writes the 0-10 session rating.
	SaveRating(ctx context.Context, userID, sessionID string, rating int, module string) error

	// SaveFeedbackEntry writes a committed feedback entry and returns its id.
	SaveFeedbackEntry(ctx context.Context, userID, sessionID, label string, timestampSeconds int, module string) (string, error)
}

package domain

import "time"

// SessionRecord is a persisted completed-session row. Elapsed time is stored
// in fractional minutes.
type SessionRecord struct {
	ID        string
	UserID    string
	SessionID string
	Minutes   float64
	Module    string
	CreatedAt time.Time
}

// RatingRecord is a persisted 0-10 session rating.
type RatingRecord struct {
	ID        string
	UserID    string
	SessionID string
	Rating    int
	Module    string
	CreatedAt time.Time
}

// PracticeStats aggregates the listening history.
type PracticeStats struct {
	SessionsCompleted int
	TotalMinutes      float64
	MeanRating        float64
	LabelCounts       map[FeedbackLabel]int
}

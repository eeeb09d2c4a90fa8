package domain

// CompletionStage is the terminal pipeline layered on top of PlayState:
// finish -> summary -> rating -> (background persist) -> closed.
type CompletionStage string

const (
	StageNone    CompletionStage = "none"
	StageSummary CompletionStage = "summary"
	StageRating  CompletionStage = "rating"
	StageClosed  CompletionStage = "closed"
)

// CompletionPipeline orchestrates the finish → rate → persist → close
// sequence. Persistence is optimistic: submitting a rating advances the UI
// immediately while the writes drain through the outbox.
type CompletionPipeline struct {
	session  *PlaybackSession
	stage    CompletionStage
	rating   *int
	emit     func(PersistRequest)
	onClosed func(discarded bool)
}

// NewCompletionPipeline creates the pipeline for a session. emit may be nil.
func NewCompletionPipeline(session *PlaybackSession, emit func(PersistRequest)) *CompletionPipeline {
	return &CompletionPipeline{session: session, stage: StageNone, emit: emit}
}

// SetOnClosed registers the close hook; discarded reports whether the close
// skipped persistence.
func (p *CompletionPipeline) SetOnClosed(fn func(discarded bool)) { p.onClosed = fn }

// EnterSummary shows the elapsed-time summary. Fired when the clock reaches
// the duration, the user finishes explicitly, or a seek hits the end.
func (p *CompletionPipeline) EnterSummary() {
	if p.stage != StageNone {
		return
	}
	p.stage = StageSummary
}

// Continue advances from the summary to rating collection.
func (p *CompletionPipeline) Continue() {
	if p.stage != StageSummary {
		return
	}
	p.stage = StageRating
}

// Discard closes without writing the completed-session record or a rating.
// Feedback entries already committed during playback remain persisted.
func (p *CompletionPipeline) Discard() {
	if p.stage == StageClosed {
		return
	}
	p.close(true)
}

// SubmitRating accepts a 0-10 rating, emits the completed-session record and
// the rating record as independent writes, and closes. The two writes do not
// roll back or skip each other on failure.
func (p *CompletionPipeline) SubmitRating(rating int) error {
	if p.stage != StageRating {
		return ErrNoActiveSession
	}
	if rating < 0 || rating > 10 {
		return ErrRatingOutOfRange
	}
	p.rating = &rating
	if p.emit != nil {
		p.emit(PersistRequest{
			Kind:      PersistSessionRecord,
			SessionID: p.session.ID,
			Minutes:   p.session.ElapsedMinutes(),
		})
		p.emit(PersistRequest{
			Kind:      PersistRating,
			SessionID: p.session.ID,
			Rating:    rating,
		})
	}
	p.close(false)
	return nil
}

func (p *CompletionPipeline) close(discarded bool) {
	p.stage = StageClosed
	if p.onClosed != nil {
		p.onClosed(discarded)
	}
}

// Stage returns the current pipeline stage.
func (p *CompletionPipeline) Stage() CompletionStage { return p.stage }

// Rating returns the submitted rating, nil before submission.
func (p *CompletionPipeline) Rating() *int { return p.rating }

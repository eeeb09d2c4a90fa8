package ports

import "context"

// AudioEngine is the playback backend. The clock's tick is independent of
// the engine's decode position: engine calls are fire-and-forget side
// effects issued alongside clock transitions, never awaited for correctness.
type AudioEngine interface {
	// Load prepares a source for playback.
	Load(ctx context.Context, sourceRef string) error

	// Play starts or resumes the engine.
	Play()

	// Pause suspends the engine.
	Pause()

	// Stop tears playback down.
	Stop()

	// Seek moves the engine to the given position.
	Seek(seconds int)
}

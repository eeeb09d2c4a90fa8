// Package services contains the application use cases that coordinate the
// domain layer with the driven ports.
package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ewalden/drift/internal/domain"
	"github.com/ewalden/drift/internal/ports"
)

// Outbox drains persistence requests emitted by the player state machines
// through the gateway on a background goroutine. Writes are best-effort:
// failures are logged and never surface back into UI state.
type Outbox struct {
	gateway ports.Gateway
	userID  string
	module  string
	logger  *slog.Logger

	requests chan domain.PersistRequest
	wg       sync.WaitGroup
	once     sync.Once
}

// NewOutbox creates an outbox writing through the given gateway. All writes
// are attributed to userID and tagged with the given module name.
func NewOutbox(gateway ports.Gateway, userID, module string, logger *slog.Logger) *Outbox {
	if logger == nil {
		logger = slog.Default()
	}
	return &Outbox{
		gateway:  gateway,
		userID:   userID,
		module:   module,
		logger:   logger,
		requests: make(chan domain.PersistRequest, 64),
	}
}

// Start launches the drain goroutine. The context bounds each gateway call.
func (o *Outbox) Start(ctx context.Context) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for req := range o.requests {
			o.dispatch(ctx, req)
		}
	}()
}

// Enqueue hands a request to the drain goroutine. It never blocks the
// caller: if the buffer is full the request is dropped and logged.
func (o *Outbox) Enqueue(req domain.PersistRequest) {
	select {
	case o.requests <- req:
	default:
		o.logger.Warn("outbox full, dropping write",
			"kind", string(req.Kind),
			"session_id", req.SessionID)
	}
}

// Close stops accepting requests and waits for in-flight writes to drain.
func (o *Outbox) Close() {
	o.once.Do(func() {
		close(o.requests)
	})
	o.wg.Wait()
}

func (o *Outbox) dispatch(ctx context.Context, req domain.PersistRequest) {
	var err error
	switch req.Kind {
	case domain.PersistFeedbackEntry:
		_, err = o.gateway.SaveFeedbackEntry(ctx, o.userID, req.SessionID, string(req.Label), req.TimestampSeconds, o.module)
	case domain.PersistSessionRecord:
		err = o.gateway.SaveCompletedSession(ctx, o.userID, req.SessionID, req.Minutes, o.module)
	case domain.PersistRating:
		err = o.gateway.SaveRating(ctx, o.userID, req.SessionID, req.Rating, o.module)
	default:
		o.logger.Warn("outbox received unknown request kind", "kind", string(req.Kind))
		return
	}
	if err != nil {
		o.logger.Error("persistence write failed",
			"kind", string(req.Kind),
			"session_id", req.SessionID,
			"error", err)
	}
}

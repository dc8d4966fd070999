package audit

import (
	"context"
	"log/slog"
)

// Publisher hands events to the background worker through a buffered
// channel. Emit drops the event (with a log line) rather than block when
// the buffer is full.
type Publisher struct {
	inbox  chan Event
	logger *slog.Logger
}

// NewPublisher builds a publisher with the given buffer size.
func NewPublisher(buffer int, logger *slog.Logger) *Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{inbox: make(chan Event, buffer), logger: logger}
}

// Emit enqueues an event for persistence.
func (p *Publisher) Emit(ctx context.Context, event Event) {
	select {
	case p.inbox <- event:
	default:
		p.logger.WarnContext(ctx, "audit buffer full, dropping event",
			"submission_id", event.SubmissionID,
			"outcome", event.Outcome,
		)
	}
}

// Inbox exposes the channel for the worker.
func (p *Publisher) Inbox() <-chan Event { return p.inbox }

package audit

import (
	"context"
	"log/slog"
)

// Worker drains the publisher inbox and persists events. Store failures are
// logged and the event dropped; persistence is best-effort.
type Worker struct {
	store  Store
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, inbox <-chan Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, inbox: inbox, logger: logger}
}

// Run processes events until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit event persist failed",
					"submission_id", event.SubmissionID,
					"error", err,
				)
			}
		}
	}
}

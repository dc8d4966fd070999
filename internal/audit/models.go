// Package audit records the outcome of every validation run for
// traceability. Emission is fire-and-forget: a full buffer or failing store
// never blocks or fails a run.
package audit

import (
	"time"

	"github.com/google/uuid"
)

// Event is one completed validation run.
type Event struct {
	ID               uuid.UUID
	SubmissionID     uuid.UUID
	OfficeCode       string
	AreaOfLaw        string
	Outcome          string
	SubmissionErrors int
	ClaimErrors      int
	Duration         time.Duration
	OccurredAt       time.Time
}

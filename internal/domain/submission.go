package domain

import "github.com/google/uuid"

// Submission is one office's bulk claim submission for a period, as held by
// the Claims Data service. Claims are immutable inputs to validation; the
// engine only writes back status and message patches.
type Submission struct {
	ID                  uuid.UUID
	OfficeAccountNumber string
	AreaOfLaw           AreaOfLaw
	Period              string
	Status              SubmissionStatus
	IsNilSubmission     bool
	Claims              []Claim
}

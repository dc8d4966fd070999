// Package ports defines the collaborator interfaces the validation engine
// consumes. Implementations live under internal/clients; tests use fakes.
package ports

import (
	"context"

	"github.com/google/uuid"

	"claimvet/internal/domain"
)

// ClaimQuery narrows a historical duplicate lookup. Zero-valued fields are
// not applied. Exactly one of UniqueClientNumber and UniqueCaseID is set,
// depending on the area of law.
type ClaimQuery struct {
	OfficeCode         string
	FeeCode            string
	UniqueFileNumber   string
	UniqueClientNumber string
	UniqueCaseID       string
	ClaimStatuses      []domain.ClaimStatus
	SubmissionStatuses []domain.SubmissionStatus
}

// SubmissionQuery looks up submissions by office, area of law and period.
type SubmissionQuery struct {
	Offices   []string
	AreaOfLaw domain.AreaOfLaw
	Period    string
	Statuses  []domain.SubmissionStatus
}

// ClaimPatch is the per-claim write-back the engine produces.
type ClaimPatch struct {
	Status   domain.ClaimStatus
	Messages []string
}

// ClaimsData is the remote store of record for submissions and claims. The
// engine never owns submission status; it only requests transitions here.
type ClaimsData interface {
	GetSubmission(ctx context.Context, id uuid.UUID) (*domain.Submission, error)
	UpdateSubmissionStatus(ctx context.Context, id uuid.UUID, status domain.SubmissionStatus) error
	GetSubmissions(ctx context.Context, q SubmissionQuery) ([]domain.Submission, error)
	GetClaims(ctx context.Context, q ClaimQuery) ([]domain.HistoricalClaim, error)
	UpdateClaim(ctx context.Context, submissionID, claimID uuid.UUID, patch ClaimPatch) error
}

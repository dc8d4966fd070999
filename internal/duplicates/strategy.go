// Package duplicates detects duplicate claims within a submission batch and
// against claims already accepted in other submissions for the same office.
// Each area of law keys equality differently, so detection is dispatched to
// one strategy per area, selected once per submission.
package duplicates

import (
	"context"
	"log/slog"
	"time"

	"claimvet/internal/domain"
	"claimvet/internal/validation"
	"claimvet/internal/validation/ports"
	dErrors "claimvet/pkg/domain-errors"
)

// Strategy checks one claim for duplicates and records findings on the run
// context. Collaborator failures become claim-level findings, never engine
// faults; a transient failure also flags the claim for retry.
type Strategy interface {
	ValidateDuplicates(ctx context.Context, claim domain.Claim, submissionClaims []domain.Claim, officeCode string, effectiveDate time.Time, vctx *validation.Context)
}

// Deps are the collaborators every strategy shares.
type Deps struct {
	Claims ports.ClaimsData
	Fees   ports.FeeScheme
	Logger *slog.Logger
}

// ForArea selects the strategy for an area of law. Unknown areas are a
// contract error: the schema validator rejects them before claims are
// examined.
func ForArea(area domain.AreaOfLaw, deps Deps) (Strategy, error) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	switch area {
	case domain.AreaCivil, domain.AreaLegalHelp:
		return &civilStrategy{deps: deps}, nil
	case domain.AreaCrimeLower:
		return &crimeLowerStrategy{deps: deps}, nil
	case domain.AreaMediation:
		return &mediationStrategy{deps: deps}, nil
	}
	return nil, dErrors.Newf(dErrors.CodeInvariantViolation, "no duplicate strategy for area of law %q", area)
}

// duplicateCandidateStatuses are the claim states a duplicate can occupy.
// INVALID claims cannot be duplicate-matched.
var duplicateCandidateStatuses = []domain.ClaimStatus{
	domain.ClaimReadyToProcess,
	domain.ClaimValid,
}

// duplicateSubmissionStatuses bound the historical search to submissions
// that are live or already accepted.
var duplicateSubmissionStatuses = []domain.SubmissionStatus{
	domain.SubmissionCreated,
	domain.SubmissionValidationInProgress,
	domain.SubmissionReadyForValidation,
	domain.SubmissionValidationSucceeded,
}

// flagBatchDuplicates finds submission claims sharing the claim's equality
// key and flags every one of them. The claim under test picks up its own
// flag when its duplicates run this same check, so both members of a pair
// end up flagged exactly once.
func flagBatchDuplicates(claim domain.Claim, submissionClaims []domain.Claim, key func(domain.Claim) string, vctx *validation.Context) {
	want := key(claim)
	for _, other := range submissionClaims {
		if other.ID == claim.ID || other.Status == domain.ClaimInvalid {
			continue
		}
		if key(other) == want {
			vctx.AddClaimError(other.ID, validation.NewError(
				validation.CodeDuplicateInSameSubmission, validation.SourceDuplicates,
				"claim %s duplicates claim %s in the same submission", other.ID, claim.ID))
		}
	}
}

// flagHistoricalDuplicates queries the Claims Data service for matching
// claims in other submissions and flags the claim under test for any hit.
// keep filters candidates (nil keeps everything).
func flagHistoricalDuplicates(ctx context.Context, deps Deps, claim domain.Claim, q ports.ClaimQuery, keep func(domain.HistoricalClaim) bool, vctx *validation.Context) {
	q.ClaimStatuses = duplicateCandidateStatuses
	q.SubmissionStatuses = duplicateSubmissionStatuses

	hits, err := deps.Claims.GetClaims(ctx, q)
	if err != nil {
		recordLookupFailure(ctx, deps, claim, err, vctx)
		return
	}
	for _, hit := range hits {
		if hit.SubmissionID == claim.SubmissionID {
			continue
		}
		if keep != nil && !keep(hit) {
			continue
		}
		vctx.AddClaimError(claim.ID, validation.NewError(
			validation.CodeDuplicateInAnotherSubmission, validation.SourceDuplicates,
			"claim %s duplicates claim %s in submission %s", claim.ID, hit.ClaimID, hit.SubmissionID))
		return
	}
}

func recordLookupFailure(ctx context.Context, deps Deps, claim domain.Claim, err error, vctx *validation.Context) {
	deps.Logger.ErrorContext(ctx, "duplicate lookup failed",
		"claim_id", claim.ID,
		"error", err,
	)
	vctx.AddClaimError(claim.ID, validation.NewError(
		validation.CodeClaimDuplicateLookupFailed, validation.SourceDuplicates,
		"duplicate lookup for claim %s failed: %v", claim.ID, err))
	if dErrors.HasCode(err, dErrors.CodeUnavailable) {
		vctx.FlagForRetry(claim.ID)
	}
}

// disbursementWindow bounds historical disbursement matches to submissions
// whose due date (the 20th of the month after the period) falls within the
// 3 calendar months before the claim's effective date. Anything older is
// not a duplicate, whatever its key.
func disbursementWindow(effectiveDate time.Time) func(domain.HistoricalClaim) bool {
	floor := effectiveDate.AddDate(0, -3, 0)
	return func(hit domain.HistoricalClaim) bool {
		period, err := domain.ParsePeriod(hit.SubmissionPeriod)
		if err != nil {
			return true
		}
		return period.SubmissionCutoff().After(floor)
	}
}

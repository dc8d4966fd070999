package validators

import (
	"context"

	"claimvet/internal/domain"
	"claimvet/internal/validation"
)

// NilSubmissionValidator enforces claim-count consistency: a nil submission
// declares zero claims for a period, a non-nil one must carry at least one.
type NilSubmissionValidator struct{}

func NewNilSubmissionValidator() *NilSubmissionValidator { return &NilSubmissionValidator{} }

func (v *NilSubmissionValidator) Priority() int { return 30 }

func (v *NilSubmissionValidator) Validate(_ context.Context, sub *domain.Submission, vctx *validation.Context) error {
	switch {
	case sub.IsNilSubmission && len(sub.Claims) > 0:
		vctx.AddSubmissionError(validation.NewError(
			validation.CodeNilSubmissionContainsClaims, validation.SourceNilClaims,
			"nil submission %s contains %d claims", sub.ID, len(sub.Claims)))
	case !sub.IsNilSubmission && len(sub.Claims) == 0:
		vctx.AddSubmissionError(validation.NewError(
			validation.CodeNonNilSubmissionNoClaims, validation.SourceNilClaims,
			"submission %s is not marked nil but contains no claims", sub.ID))
	}
	return nil
}

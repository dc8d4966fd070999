package validators

import (
	"context"

	"claimvet/internal/domain"
	"claimvet/internal/validation"
	"claimvet/internal/validation/ports"
	dErrors "claimvet/pkg/domain-errors"
)

// UniquenessValidator rejects a submission when another submission for the
// same office, area of law and period has already reached
// VALIDATION_SUCCEEDED. The Claims Data service is the store of record, so
// a failed lookup here aborts the run rather than producing a finding.
type UniquenessValidator struct {
	claims ports.ClaimsData
}

func NewUniquenessValidator(claims ports.ClaimsData) *UniquenessValidator {
	return &UniquenessValidator{claims: claims}
}

func (v *UniquenessValidator) Priority() int { return 60 }

func (v *UniquenessValidator) Validate(ctx context.Context, sub *domain.Submission, vctx *validation.Context) error {
	existing, err := v.claims.GetSubmissions(ctx, ports.SubmissionQuery{
		Offices:   []string{sub.OfficeAccountNumber},
		AreaOfLaw: sub.AreaOfLaw,
		Period:    sub.Period,
		Statuses:  []domain.SubmissionStatus{domain.SubmissionValidationSucceeded},
	})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "query submissions for uniqueness check")
	}
	for _, other := range existing {
		if other.ID != sub.ID {
			vctx.AddSubmissionError(validation.NewError(
				validation.CodeDuplicateSubmission, validation.SourceUniqueness,
				"submission %s already validated for office %s, area %s, period %s",
				other.ID, sub.OfficeAccountNumber, sub.AreaOfLaw, sub.Period))
			return nil
		}
	}
	return nil
}

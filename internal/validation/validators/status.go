package validators

import (
	"context"
	"log/slog"

	"claimvet/internal/domain"
	"claimvet/internal/validation"
	"claimvet/internal/validation/ports"
	dErrors "claimvet/pkg/domain-errors"
)

// StatusValidator is the hard gate at the front of the chain. It requests
// the READY_FOR_VALIDATION to VALIDATION_IN_PROGRESS transition before any
// other check runs; the Claims Data service owns the status and treats that
// write as the synchronization point between concurrent runs.
type StatusValidator struct {
	claims ports.ClaimsData
	logger *slog.Logger
}

func NewStatusValidator(claims ports.ClaimsData, logger *slog.Logger) *StatusValidator {
	return &StatusValidator{claims: claims, logger: logger}
}

func (v *StatusValidator) Priority() int { return 10 }

func (v *StatusValidator) Validate(ctx context.Context, sub *domain.Submission, vctx *validation.Context) error {
	switch sub.Status {
	case domain.SubmissionReadyForValidation:
		if err := v.claims.UpdateSubmissionStatus(ctx, sub.ID, domain.SubmissionValidationInProgress); err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "request validation-in-progress transition")
		}
		sub.Status = domain.SubmissionValidationInProgress
		return nil
	case domain.SubmissionValidationInProgress:
		// A previous run was interrupted; resume idempotently.
		v.logger.InfoContext(ctx, "resuming interrupted validation", "submission_id", sub.ID)
		return nil
	case "":
		vctx.AddSubmissionError(validation.NewError(
			validation.CodeSubmissionInvalidState, validation.SourceStatus,
			"submission %s has no status", sub.ID))
		return ErrStopValidation
	default:
		vctx.AddSubmissionError(validation.NewError(
			validation.CodeSubmissionInvalidState, validation.SourceStatus,
			"Submission cannot be validated in state %s", sub.Status))
		return ErrStopValidation
	}
}

package validators

import (
	"context"
	"log/slog"
	"time"

	"claimvet/internal/domain"
	"claimvet/internal/schedulecache"
	"claimvet/internal/validation"
)

// ContractValidator checks the office holds at least one contracted
// schedule for the stated area of law, via the provider schedule cache. A
// lookup failure after retries becomes a submission-level finding, not a
// run failure.
type ContractValidator struct {
	cache  *schedulecache.Cache
	logger *slog.Logger
	clock  func() time.Time
}

func NewContractValidator(cache *schedulecache.Cache, logger *slog.Logger) *ContractValidator {
	return &ContractValidator{cache: cache, logger: logger, clock: time.Now}
}

func (v *ContractValidator) Priority() int { return 40 }

func (v *ContractValidator) Validate(ctx context.Context, sub *domain.Submission, vctx *validation.Context) error {
	// Contract coverage is checked at the start of the submission period;
	// an unparseable period is the period validator's finding, not ours.
	effective := v.clock()
	if period, err := domain.ParsePeriod(sub.Period); err == nil {
		effective = period.FirstDay()
	}

	schedules, err := v.cache.Schedules(ctx, sub.OfficeAccountNumber, sub.AreaOfLaw, effective)
	if err != nil {
		v.logger.ErrorContext(ctx, "provider schedule lookup failed",
			"submission_id", sub.ID,
			"office_code", sub.OfficeAccountNumber,
			"error", err,
		)
		vctx.AddSubmissionError(validation.NewError(
			validation.CodeProviderLookupFailed, validation.SourceContract,
			"schedules for office %s could not be retrieved: %v", sub.OfficeAccountNumber, err))
		return nil
	}
	if schedules == nil || len(schedules.Schedules) == 0 {
		vctx.AddSubmissionError(validation.NewError(
			validation.CodeProviderNotContracted, validation.SourceContract,
			"office %s has no contracted category of law for %s", sub.OfficeAccountNumber, sub.AreaOfLaw))
	}
	return nil
}

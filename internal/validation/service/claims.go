package service

import (
	"context"
	"time"

	"claimvet/internal/domain"
	"claimvet/internal/duplicates"
	"claimvet/internal/effectivedate"
	"claimvet/internal/validation"
	"claimvet/internal/validation/ports"
	dErrors "claimvet/pkg/domain-errors"
)

// validateClaims runs the per-claim checks: effective-date resolution, the
// duplicate strategy for the submission's area of law, fee calculation, and
// the business date-range bound. Claim order follows the submission so two
// runs over unchanged data produce identical contexts.
func (s *Service) validateClaims(ctx context.Context, sub *domain.Submission, vctx *validation.Context) error {
	strategy, err := duplicates.ForArea(sub.AreaOfLaw, duplicates.Deps{
		Claims: s.claims,
		Fees:   s.fees,
		Logger: s.logger,
	})
	if err != nil {
		// Unknown area of law: the schema validator has already recorded a
		// finding; skip claim checks rather than abort.
		s.logger.WarnContext(ctx, "skipping claim checks", "submission_id", sub.ID, "error", err)
		return nil
	}

	for _, claim := range sub.Claims {
		effective, err := effectivedate.Resolve(claim)
		if err != nil {
			vctx.AddClaimError(claim.ID, validation.NewError(
				validation.CodeClaimInvalidDate, validation.SourceClaimDates,
				"claim %s: %v", claim.ID, err))
		} else {
			s.checkDateRange(claim, effective, vctx)
		}

		strategy.ValidateDuplicates(ctx, claim, sub.Claims, sub.OfficeAccountNumber, effective, vctx)
		s.calculateFee(ctx, sub, claim, vctx)
	}
	return nil
}

// checkDateRange enforces the effective date bound: no earlier than the
// configured floor, no later than now.
func (s *Service) checkDateRange(claim domain.Claim, effective time.Time, vctx *validation.Context) {
	now := s.clock()
	if !s.earliestClaim.IsZero() && effective.Before(s.earliestClaim) {
		vctx.AddClaimError(claim.ID, validation.NewError(
			validation.CodeClaimDateOutOfRange, validation.SourceClaimDates,
			"claim %s: effective date %s is before the earliest accepted date %s",
			claim.ID, effective.Format("2006-01-02"), s.earliestClaim.Format("2006-01-02")))
	}
	if effective.After(now) {
		vctx.AddClaimError(claim.ID, validation.NewError(
			validation.CodeClaimDateOutOfRange, validation.SourceClaimDates,
			"claim %s: effective date %s is in the future",
			claim.ID, effective.Format("2006-01-02")))
	}
}

// calculateFee delegates pricing to the Fee Scheme service. Failures become
// claim-level findings; a transient outage also flags the claim for retry.
func (s *Service) calculateFee(ctx context.Context, sub *domain.Submission, claim domain.Claim, vctx *validation.Context) {
	_, err := s.fees.CalculateFee(ctx, ports.FeeCalculationRequest{
		FeeCode:          claim.FeeCode,
		AreaOfLaw:        sub.AreaOfLaw,
		UniqueFileNumber: claim.UniqueFileNumber,
		CaseStartDate:    claim.CaseStartDate,
	})
	if err == nil {
		return
	}
	vctx.AddClaimError(claim.ID, validation.NewError(
		validation.CodeClaimFeeCalculationFailed, validation.SourceFeeScheme,
		"fee calculation for claim %s failed: %v", claim.ID, err))
	if dErrors.HasCode(err, dErrors.CodeUnavailable) {
		vctx.FlagForRetry(claim.ID)
	}
}

package duplicates

import (
	"context"
	"time"

	"claimvet/internal/domain"
	"claimvet/internal/validation"
	"claimvet/internal/validation/ports"
)

// crimeLowerStrategy keys equality on (fee code, unique file number)
// regardless of fee type. Disbursement claims still undergo the historical
// check, but only against submissions inside the 3-month window.
type crimeLowerStrategy struct {
	deps Deps
}

func (s *crimeLowerStrategy) ValidateDuplicates(ctx context.Context, claim domain.Claim, submissionClaims []domain.Claim, officeCode string, effectiveDate time.Time, vctx *validation.Context) {
	key := func(c domain.Claim) string {
		return c.FeeCode + "|" + c.UniqueFileNumber
	}
	flagBatchDuplicates(claim, submissionClaims, key, vctx)

	var keep func(domain.HistoricalClaim) bool
	details, err := s.deps.Fees.GetFeeDetails(ctx, claim.FeeCode)
	if err != nil {
		recordLookupFailure(ctx, s.deps, claim, err, vctx)
		return
	}
	if details.FeeType == ports.FeeTypeDisbursement && !effectiveDate.IsZero() {
		keep = disbursementWindow(effectiveDate)
	}

	flagHistoricalDuplicates(ctx, s.deps, claim, ports.ClaimQuery{
		OfficeCode:       officeCode,
		FeeCode:          claim.FeeCode,
		UniqueFileNumber: claim.UniqueFileNumber,
	}, keep, vctx)
}

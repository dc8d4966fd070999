package duplicates

import (
	"context"
	"time"

	"claimvet/internal/domain"
	"claimvet/internal/validation"
	"claimvet/internal/validation/ports"
)

// civilStrategy keys equality on (fee code, unique file number, unique
// client number). Disbursement-only fee codes are exempt from the historical
// cross-submission check; they are only matched within the current batch.
type civilStrategy struct {
	deps Deps
}

func (s *civilStrategy) ValidateDuplicates(ctx context.Context, claim domain.Claim, submissionClaims []domain.Claim, officeCode string, effectiveDate time.Time, vctx *validation.Context) {
	key := func(c domain.Claim) string {
		return c.FeeCode + "|" + c.UniqueFileNumber + "|" + c.UniqueClientNumber
	}
	flagBatchDuplicates(claim, submissionClaims, key, vctx)

	details, err := s.deps.Fees.GetFeeDetails(ctx, claim.FeeCode)
	if err != nil {
		recordLookupFailure(ctx, s.deps, claim, err, vctx)
		return
	}
	if details.FeeType == ports.FeeTypeDisbursement {
		return
	}

	flagHistoricalDuplicates(ctx, s.deps, claim, ports.ClaimQuery{
		OfficeCode:         officeCode,
		FeeCode:            claim.FeeCode,
		UniqueFileNumber:   claim.UniqueFileNumber,
		UniqueClientNumber: claim.UniqueClientNumber,
	}, nil, vctx)
}

package duplicates

import (
	"context"
	"time"

	"claimvet/internal/domain"
	"claimvet/internal/validation"
	"claimvet/internal/validation/ports"
)

// mediationStrategy keys equality on (fee code, unique case id). Fee type
// plays no part for mediation claims.
type mediationStrategy struct {
	deps Deps
}

func (s *mediationStrategy) ValidateDuplicates(ctx context.Context, claim domain.Claim, submissionClaims []domain.Claim, officeCode string, effectiveDate time.Time, vctx *validation.Context) {
	key := func(c domain.Claim) string {
		return c.FeeCode + "|" + c.UniqueCaseID
	}
	flagBatchDuplicates(claim, submissionClaims, key, vctx)

	flagHistoricalDuplicates(ctx, s.deps, claim, ports.ClaimQuery{
		OfficeCode:   officeCode,
		FeeCode:      claim.FeeCode,
		UniqueCaseID: claim.UniqueCaseID,
	}, nil, vctx)
}

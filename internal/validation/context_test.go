package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext_EmptyRunHasNoErrors(t *testing.T) {
	vctx := NewContext()

	assert.False(t, vctx.HasErrors())
	assert.Empty(t, vctx.SubmissionMessages())
	assert.Empty(t, vctx.ClaimReports())
	assert.Nil(t, vctx.ClaimReport(uuid.New()))
}

func TestContext_SubmissionErrors(t *testing.T) {
	vctx := NewContext()
	vctx.AddSubmissionError(NewError(CodePeriodFutureMonth, SourcePeriod, ""))

	assert.True(t, vctx.HasErrors())
	require.Len(t, vctx.SubmissionMessages(), 1)
	assert.Equal(t, CodePeriodFutureMonth, vctx.SubmissionMessages()[0].Code)
}

func TestContext_OneReportPerClaim(t *testing.T) {
	vctx := NewContext()
	claimID := uuid.New()

	vctx.AddClaimError(claimID, NewError(CodeClaimInvalidDate, SourceClaimDates, ""))
	vctx.AddClaimError(claimID, NewError(CodeClaimFeeCalculationFailed, SourceFeeScheme, ""))
	vctx.FlagForRetry(claimID)

	reports := vctx.ClaimReports()
	require.Len(t, reports, 1)
	assert.Equal(t, claimID, reports[0].ClaimID)
	assert.Len(t, reports[0].Messages, 2)
	assert.True(t, reports[0].Retry)
	assert.True(t, vctx.HasClaimErrors(claimID))
}

func TestContext_ReportsKeepFirstTouchOrder(t *testing.T) {
	vctx := NewContext()
	first, second, third := uuid.New(), uuid.New(), uuid.New()

	vctx.AddClaimError(first, NewError(CodeClaimInvalidDate, SourceClaimDates, ""))
	vctx.AddClaimError(second, NewError(CodeClaimInvalidDate, SourceClaimDates, ""))
	vctx.AddClaimError(third, NewError(CodeClaimInvalidDate, SourceClaimDates, ""))
	// Touching an existing claim again must not reorder it.
	vctx.AddClaimError(first, NewError(CodeClaimFeeCalculationFailed, SourceFeeScheme, ""))

	reports := vctx.ClaimReports()
	require.Len(t, reports, 3)
	assert.Equal(t, first, reports[0].ClaimID)
	assert.Equal(t, second, reports[1].ClaimID)
	assert.Equal(t, third, reports[2].ClaimID)
}

func TestContext_WarningsDoNotFailTheRun(t *testing.T) {
	vctx := NewContext()
	claimID := uuid.New()

	vctx.AddSubmissionError(NewWarning(CodeProviderLookupFailed, SourceContract, ""))
	vctx.AddClaimMessages(claimID, []Message{
		NewWarning(CodeClaimDuplicateLookupFailed, SourceDuplicates, ""),
	})

	assert.False(t, vctx.HasErrors())
	assert.False(t, vctx.HasClaimErrors(claimID))
}

func TestContext_RetryOnlyReportStillListed(t *testing.T) {
	vctx := NewContext()
	claimID := uuid.New()
	vctx.FlagForRetry(claimID)

	require.NotNil(t, vctx.ClaimReport(claimID))
	assert.True(t, vctx.ClaimReport(claimID).Retry)
	assert.False(t, vctx.HasClaimErrors(claimID))
	assert.False(t, vctx.HasErrors())
}

func TestNewError_TechnicalFallsBackToDisplay(t *testing.T) {
	plain := NewError(CodeClaimInvalidDate, SourceClaimDates, "")
	assert.Equal(t, plain.Display, plain.Technical)

	formatted := NewError(CodeClaimInvalidDate, SourceClaimDates, "claim %s has no candidate dates", "abc")
	assert.Equal(t, "claim abc has no candidate dates", formatted.Technical)
	assert.NotEqual(t, formatted.Display, formatted.Technical)
}

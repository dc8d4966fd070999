package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"claimvet/internal/audit"
	"claimvet/internal/domain"
	"claimvet/internal/schedulecache"
	"claimvet/internal/validation"
	"claimvet/internal/validation/ports"
	dErrors "claimvet/pkg/domain-errors"
)

type fakeClaimsData struct {
	submission     *domain.Submission
	submissionErr  error
	historical     []domain.HistoricalClaim
	historicalErr  error
	existing       []domain.Submission
	existingErr    error
	statusUpdates  []domain.SubmissionStatus
	statusErr      error
	claimPatches   map[uuid.UUID]ports.ClaimPatch
	updateClaimErr error
}

func newFakeClaimsData(sub *domain.Submission) *fakeClaimsData {
	return &fakeClaimsData{submission: sub, claimPatches: make(map[uuid.UUID]ports.ClaimPatch)}
}

func (f *fakeClaimsData) GetSubmission(_ context.Context, id uuid.UUID) (*domain.Submission, error) {
	if f.submissionErr != nil {
		return nil, f.submissionErr
	}
	if f.submission == nil || f.submission.ID != id {
		return nil, nil
	}
	// Hand out a copy: the engine mutates status in place.
	copied := *f.submission
	return &copied, nil
}

func (f *fakeClaimsData) UpdateSubmissionStatus(_ context.Context, _ uuid.UUID, status domain.SubmissionStatus) error {
	if f.statusErr != nil {
		return f.statusErr
	}
	f.statusUpdates = append(f.statusUpdates, status)
	return nil
}

func (f *fakeClaimsData) GetSubmissions(_ context.Context, _ ports.SubmissionQuery) ([]domain.Submission, error) {
	return f.existing, f.existingErr
}

func (f *fakeClaimsData) GetClaims(_ context.Context, _ ports.ClaimQuery) ([]domain.HistoricalClaim, error) {
	return f.historical, f.historicalErr
}

func (f *fakeClaimsData) UpdateClaim(_ context.Context, _, claimID uuid.UUID, patch ports.ClaimPatch) error {
	if f.updateClaimErr != nil {
		return f.updateClaimErr
	}
	f.claimPatches[claimID] = patch
	return nil
}

type fakeFeeScheme struct {
	feeType      string
	detailsErr   error
	calculateErr error
	calculated   int
}

func (f *fakeFeeScheme) GetFeeDetails(_ context.Context, feeCode string) (*ports.FeeDetails, error) {
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	feeType := f.feeType
	if feeType == "" {
		feeType = "FIXED"
	}
	return &ports.FeeDetails{FeeCode: feeCode, FeeType: feeType}, nil
}

func (f *fakeFeeScheme) CalculateFee(_ context.Context, req ports.FeeCalculationRequest) (*ports.FeeCalculationResult, error) {
	f.calculated++
	if f.calculateErr != nil {
		return nil, f.calculateErr
	}
	return &ports.FeeCalculationResult{FeeCode: req.FeeCode, Total: 99.50}, nil
}

type fakeProviderDetails struct {
	schedules *ports.ProviderSchedules
	err       error
}

func (f *fakeProviderDetails) GetSchedules(_ context.Context, _ string, _ domain.AreaOfLaw, _ time.Time) (*ports.ProviderSchedules, error) {
	return f.schedules, f.err
}

type fakeAuditor struct {
	events []audit.Event
}

func (f *fakeAuditor) Emit(_ context.Context, event audit.Event) {
	f.events = append(f.events, event)
}

// fixture bundles the collaborators for one scenario.
type fixture struct {
	claims  *fakeClaimsData
	fees    *fakeFeeScheme
	auditor *fakeAuditor
	service *Service
}

var testNow = time.Date(2025, time.May, 15, 12, 0, 0, 0, time.UTC)

func newFixture(t *testing.T, sub *domain.Submission) *fixture {
	t.Helper()

	upstream := &fakeProviderDetails{schedules: &ports.ProviderSchedules{
		OfficeCode: "1A2B3C",
		Schedules: []ports.Schedule{{
			StartDate:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			EndDate:       time.Date(2030, 12, 31, 0, 0, 0, 0, time.UTC),
			CategoryOfLaw: "MAT",
		}},
	}}
	cache := schedulecache.New(schedulecache.NewMemoryStore(), upstream)

	f := &fixture{
		claims:  newFakeClaimsData(sub),
		fees:    &fakeFeeScheme{},
		auditor: &fakeAuditor{},
	}
	svc, err := New(f.claims, f.fees, cache,
		WithAuditPublisher(f.auditor),
		WithClock(func() time.Time { return testNow }),
		WithEarliestClaimDate(time.Date(2016, 4, 1, 0, 0, 0, 0, time.UTC)),
	)
	require.NoError(t, err)
	f.service = svc
	return f
}

func validSubmission() *domain.Submission {
	subID := uuid.New()
	return &domain.Submission{
		ID:                  subID,
		OfficeAccountNumber: "1A2B3C",
		AreaOfLaw:           domain.AreaCivil,
		Period:              "MAR-2025",
		Status:              domain.SubmissionReadyForValidation,
		Claims: []domain.Claim{{
			ID:                 uuid.New(),
			SubmissionID:       subID,
			FeeCode:            "CIV123",
			UniqueFileNumber:   "010124/001",
			UniqueClientNumber: "CLIENT1",
			CaseStartDate:      "2024-01-01",
			Status:             domain.ClaimReadyToProcess,
		}},
	}
}

func TestValidateSubmission_CleanRunSucceeds(t *testing.T) {
	sub := validSubmission()
	f := newFixture(t, sub)

	vctx, err := f.service.ValidateSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.False(t, vctx.HasErrors())

	// in-progress first, then the terminal status.
	assert.Equal(t, []domain.SubmissionStatus{
		domain.SubmissionValidationInProgress,
		domain.SubmissionValidationSucceeded,
	}, f.claims.statusUpdates)

	patch, ok := f.claims.claimPatches[sub.Claims[0].ID]
	require.True(t, ok, "claim patch must be written")
	assert.Equal(t, domain.ClaimValid, patch.Status)
	assert.Empty(t, patch.Messages)
	assert.Equal(t, 1, f.fees.calculated)

	require.Len(t, f.auditor.events, 1)
	assert.Equal(t, "succeeded", f.auditor.events[0].Outcome)
	assert.Equal(t, sub.ID, f.auditor.events[0].SubmissionID)
}

func TestValidateSubmission_MissingSubmission(t *testing.T) {
	f := newFixture(t, nil)

	_, err := f.service.ValidateSubmission(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	assert.Empty(t, f.auditor.events)
}

func TestValidateSubmission_RetrievalFailure(t *testing.T) {
	f := newFixture(t, nil)
	f.claims.submissionErr = dErrors.New(dErrors.CodeUnavailable, "claims data down")

	_, err := f.service.ValidateSubmission(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestValidateSubmission_HaltedRunWritesNothing(t *testing.T) {
	sub := validSubmission()
	sub.Status = domain.SubmissionValidationSucceeded
	f := newFixture(t, sub)

	vctx, err := f.service.ValidateSubmission(context.Background(), sub.ID)
	require.NoError(t, err)

	// The status gate refuses the state: findings stand, but no status or
	// claim write-back happens and no fee is calculated.
	assert.True(t, vctx.HasErrors())
	assert.Empty(t, f.claims.statusUpdates)
	assert.Empty(t, f.claims.claimPatches)
	assert.Equal(t, 0, f.fees.calculated)

	require.Len(t, f.auditor.events, 1)
	assert.Equal(t, "halted", f.auditor.events[0].Outcome)
}

func TestValidateSubmission_ClaimFindingsInvalidateClaimAndFailSubmission(t *testing.T) {
	sub := validSubmission()
	sub.Claims[0].CaseStartDate = "not-a-date"
	f := newFixture(t, sub)

	vctx, err := f.service.ValidateSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.True(t, vctx.HasErrors())

	patch := f.claims.claimPatches[sub.Claims[0].ID]
	assert.Equal(t, domain.ClaimInvalid, patch.Status)
	require.NotEmpty(t, patch.Messages)
	assert.Contains(t, patch.Messages[0], string(validation.CodeClaimInvalidDate))

	assert.Equal(t, domain.SubmissionValidationFailed, f.claims.statusUpdates[len(f.claims.statusUpdates)-1])
	assert.Equal(t, "failed", f.auditor.events[0].Outcome)
}

func TestValidateSubmission_HistoricalDuplicateFailsClaim(t *testing.T) {
	sub := validSubmission()
	f := newFixture(t, sub)
	f.claims.historical = []domain.HistoricalClaim{{
		ClaimID:          uuid.New(),
		SubmissionID:     uuid.New(),
		SubmissionPeriod: "JAN-2025",
		Status:           domain.ClaimValid,
	}}

	vctx, err := f.service.ValidateSubmission(context.Background(), sub.ID)
	require.NoError(t, err)

	report := vctx.ClaimReport(sub.Claims[0].ID)
	require.NotNil(t, report)
	assert.Equal(t, validation.CodeDuplicateInAnotherSubmission, report.Messages[0].Code)
	assert.Equal(t, domain.ClaimInvalid, f.claims.claimPatches[sub.Claims[0].ID].Status)
}

func TestValidateSubmission_BatchDuplicatePairBothInvalid(t *testing.T) {
	sub := validSubmission()
	twin := sub.Claims[0]
	twin.ID = uuid.New()
	sub.Claims = append(sub.Claims, twin)
	f := newFixture(t, sub)

	vctx, err := f.service.ValidateSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.True(t, vctx.HasErrors())

	for _, claim := range sub.Claims {
		patch := f.claims.claimPatches[claim.ID]
		assert.Equal(t, domain.ClaimInvalid, patch.Status, "claim %s", claim.ID)
		report := vctx.ClaimReport(claim.ID)
		require.NotNil(t, report)
		require.Len(t, report.Messages, 1, "each pair member is flagged exactly once")
		assert.Equal(t, validation.CodeDuplicateInSameSubmission, report.Messages[0].Code)
	}
}

func TestValidateSubmission_TransientFeeFailureFlagsRetry(t *testing.T) {
	sub := validSubmission()
	f := newFixture(t, sub)
	f.fees.calculateErr = dErrors.New(dErrors.CodeUnavailable, "fee scheme down")

	vctx, err := f.service.ValidateSubmission(context.Background(), sub.ID)
	require.NoError(t, err)

	report := vctx.ClaimReport(sub.Claims[0].ID)
	require.NotNil(t, report)
	assert.True(t, report.Retry)
	assert.Equal(t, validation.CodeClaimFeeCalculationFailed, report.Messages[0].Code)
}

func TestValidateSubmission_NilSubmissionWithoutClaimsSucceeds(t *testing.T) {
	sub := validSubmission()
	sub.IsNilSubmission = true
	sub.Claims = nil
	f := newFixture(t, sub)

	vctx, err := f.service.ValidateSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	assert.False(t, vctx.HasErrors())
	assert.Equal(t, domain.SubmissionValidationSucceeded, f.claims.statusUpdates[len(f.claims.statusUpdates)-1])
}

func TestValidateSubmission_UniquenessLookupFailureAbortsRun(t *testing.T) {
	sub := validSubmission()
	f := newFixture(t, sub)
	f.claims.existingErr = dErrors.New(dErrors.CodeUnavailable, "claims data down")

	_, err := f.service.ValidateSubmission(context.Background(), sub.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))

	// The run aborted before finalize: no terminal status written.
	assert.Equal(t, []domain.SubmissionStatus{domain.SubmissionValidationInProgress}, f.claims.statusUpdates)
	assert.Empty(t, f.auditor.events)
}

func TestValidateSubmission_WriteBackFailureIsRunError(t *testing.T) {
	sub := validSubmission()
	f := newFixture(t, sub)
	f.claims.updateClaimErr = dErrors.New(dErrors.CodeUnavailable, "claims data down")

	_, err := f.service.ValidateSubmission(context.Background(), sub.ID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
}

func TestValidateSubmission_RerunProducesIdenticalFindings(t *testing.T) {
	sub := validSubmission()
	twin := sub.Claims[0]
	twin.ID = uuid.New()
	sub.Claims = append(sub.Claims, twin)
	f := newFixture(t, sub)

	first, err := f.service.ValidateSubmission(context.Background(), sub.ID)
	require.NoError(t, err)
	second, err := f.service.ValidateSubmission(context.Background(), sub.ID)
	require.NoError(t, err)

	require.Len(t, second.ClaimReports(), len(first.ClaimReports()))
	for i, report := range first.ClaimReports() {
		other := second.ClaimReports()[i]
		assert.Equal(t, report.ClaimID, other.ClaimID)
		assert.Equal(t, report.Messages, other.Messages)
	}
	assert.Equal(t, first.SubmissionMessages(), second.SubmissionMessages())
}

func TestNew_RequiresCollaborators(t *testing.T) {
	cache := schedulecache.New(schedulecache.NewMemoryStore(), &fakeProviderDetails{})

	_, err := New(nil, &fakeFeeScheme{}, cache)
	assert.Error(t, err)
	_, err = New(newFakeClaimsData(nil), nil, cache)
	assert.Error(t, err)
	_, err = New(newFakeClaimsData(nil), &fakeFeeScheme{}, nil)
	assert.Error(t, err)
}

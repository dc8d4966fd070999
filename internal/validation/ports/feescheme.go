package ports

import (
	"context"

	"claimvet/internal/domain"
)

// FeeType values the engine branches on. Anything else passes through
// untouched.
const FeeTypeDisbursement = "DISBURSEMENT_ONLY"

// FeeDetails describes a fee code as known to the Fee Scheme service.
type FeeDetails struct {
	FeeCode string
	FeeType string
}

// FeeCalculationRequest carries the claim fields the Fee Scheme service
// needs to price a claim.
type FeeCalculationRequest struct {
	FeeCode          string
	AreaOfLaw        domain.AreaOfLaw
	UniqueFileNumber string
	CaseStartDate    string
}

// FeeCalculationResult is the priced outcome; the engine only cares that the
// calculation succeeded.
type FeeCalculationResult struct {
	FeeCode string
	Total   float64
}

// FeeScheme is the remote fee calculation and fee-type lookup service.
type FeeScheme interface {
	GetFeeDetails(ctx context.Context, feeCode string) (*FeeDetails, error)
	CalculateFee(ctx context.Context, req FeeCalculationRequest) (*FeeCalculationResult, error)
}

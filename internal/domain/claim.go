package domain

import "github.com/google/uuid"

// Claim is a single claim line within a submission. Date fields keep the
// string form they were submitted in; parsing happens during validation so a
// malformed date surfaces as a finding rather than an ingestion failure.
type Claim struct {
	ID                      uuid.UUID
	SubmissionID            uuid.UUID
	FeeCode                 string
	UniqueFileNumber        string
	UniqueClientNumber      string
	UniqueCaseID            string
	CaseStartDate           string
	CaseConcludedDate       string
	RepresentationOrderDate string
	Status                  ClaimStatus
}

// HistoricalClaim is a duplicate-candidate claim returned by the Claims Data
// service, carrying enough of its parent submission to apply period cutoffs.
type HistoricalClaim struct {
	ClaimID          uuid.UUID
	SubmissionID     uuid.UUID
	SubmissionPeriod string
	Status           ClaimStatus
}

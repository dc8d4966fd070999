package validation

import "fmt"

// Severity ranks a finding. Warnings never fail a submission.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// ErrorCode identifies a validation finding in a machine-readable way.
type ErrorCode string

const (
	CodeSubmissionInvalidState       ErrorCode = "SUBMISSION_INVALID_STATE"
	CodeSubmissionMissing            ErrorCode = "SUBMISSION_MISSING"
	CodeSubmissionSchemaViolation    ErrorCode = "SUBMISSION_SCHEMA_VIOLATION"
	CodeNilSubmissionContainsClaims  ErrorCode = "INVALID_NIL_SUBMISSION_CONTAINS_CLAIMS"
	CodeNonNilSubmissionNoClaims     ErrorCode = "NON_NIL_SUBMISSION_CONTAINS_NO_CLAIMS"
	CodeProviderNotContracted        ErrorCode = "SUBMISSION_PROVIDER_NOT_CONTRACTED"
	CodeProviderLookupFailed         ErrorCode = "SUBMISSION_PROVIDER_LOOKUP_FAILED"
	CodePeriodInvalidFormat          ErrorCode = "SUBMISSION_PERIOD_INVALID_FORMAT"
	CodePeriodSameMonth              ErrorCode = "SUBMISSION_PERIOD_SAME_MONTH"
	CodePeriodFutureMonth            ErrorCode = "SUBMISSION_PERIOD_FUTURE_MONTH"
	CodePeriodBelowMinimum           ErrorCode = "SUBMISSION_VALIDATION_MINIMUM_PERIOD"
	CodeDuplicateSubmission          ErrorCode = "SUBMISSION_ALREADY_VALIDATED_FOR_PERIOD"
	CodeDuplicateInSameSubmission    ErrorCode = "INVALID_CLAIM_HAS_DUPLICATE_IN_EXISTING_SUBMISSION"
	CodeDuplicateInAnotherSubmission ErrorCode = "INVALID_CLAIM_HAS_DUPLICATE_IN_ANOTHER_SUBMISSION"
	CodeClaimInvalidDate             ErrorCode = "INVALID_CLAIM_EFFECTIVE_DATE"
	CodeClaimDateOutOfRange          ErrorCode = "INVALID_CLAIM_DATE_OUT_OF_RANGE"
	CodeClaimDuplicateLookupFailed   ErrorCode = "CLAIM_DUPLICATE_LOOKUP_FAILED"
	CodeClaimFeeCalculationFailed    ErrorCode = "CLAIM_FEE_CALCULATION_FAILED"
)

// Source tags which validator produced a finding.
type Source string

const (
	SourceStatus     Source = "status"
	SourceSchema     Source = "schema"
	SourceNilClaims  Source = "nil-submission"
	SourceContract   Source = "provider-contract"
	SourcePeriod     Source = "submission-period"
	SourceUniqueness Source = "submission-uniqueness"
	SourceDuplicates Source = "duplicate-claims"
	SourceClaimDates Source = "claim-dates"
	SourceFeeScheme  Source = "fee-scheme"
)

// Message is a single validation finding. Display is shown to providers;
// Technical is kept for support staff and logs.
type Message struct {
	Code      ErrorCode
	Display   string
	Technical string
	Source    Source
	Severity  Severity
}

var displayTexts = map[ErrorCode]string{
	CodeSubmissionInvalidState:       "Submission cannot be validated in its current state",
	CodeSubmissionMissing:            "Submission could not be found",
	CodeSubmissionSchemaViolation:    "Submission contains an invalid field",
	CodeNilSubmissionContainsClaims:  "A nil submission must not contain claims",
	CodeNonNilSubmissionNoClaims:     "A submission must contain at least one claim",
	CodeProviderNotContracted:        "Office has no contracted schedule for this area of law",
	CodeProviderLookupFailed:         "Provider contract details could not be retrieved",
	CodePeriodInvalidFormat:          "Submission period is not in MMM-yyyy format",
	CodePeriodSameMonth:              "Submission period must be before the current month",
	CodePeriodFutureMonth:            "Submission period must not be in the future",
	CodePeriodBelowMinimum:           "Submission period is before the earliest accepted period",
	CodeDuplicateSubmission:          "A validated submission already exists for this office, area of law and period",
	CodeDuplicateInSameSubmission:    "Claim duplicates another claim in this submission",
	CodeDuplicateInAnotherSubmission: "Claim duplicates a claim in another submission",
	CodeClaimInvalidDate:             "Claim has no usable effective date",
	CodeClaimDateOutOfRange:          "Claim date is outside the accepted range",
	CodeClaimDuplicateLookupFailed:   "Duplicate check could not be completed for this claim",
	CodeClaimFeeCalculationFailed:    "Fee calculation failed for this claim",
}

// NewError builds an ERROR finding for code. The technical message is
// formatted from args when given, otherwise it repeats the display text.
func NewError(code ErrorCode, source Source, format string, args ...any) Message {
	return newMessage(code, source, SeverityError, format, args...)
}

// NewWarning builds a WARNING finding for code.
func NewWarning(code ErrorCode, source Source, format string, args ...any) Message {
	return newMessage(code, source, SeverityWarning, format, args...)
}

func newMessage(code ErrorCode, source Source, sev Severity, format string, args ...any) Message {
	display := displayTexts[code]
	technical := display
	if format != "" {
		technical = fmt.Sprintf(format, args...)
	}
	return Message{
		Code:      code,
		Display:   display,
		Technical: technical,
		Source:    source,
		Severity:  sev,
	}
}

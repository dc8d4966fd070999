package domain

// SubmissionStatus is owned by the Claims Data service; the engine only
// requests forward transitions.
type SubmissionStatus string

const (
	SubmissionCreated              SubmissionStatus = "CREATED"
	SubmissionReadyForValidation   SubmissionStatus = "READY_FOR_VALIDATION"
	SubmissionValidationInProgress SubmissionStatus = "VALIDATION_IN_PROGRESS"
	SubmissionValidationSucceeded  SubmissionStatus = "VALIDATION_SUCCEEDED"
	SubmissionValidationFailed     SubmissionStatus = "VALIDATION_FAILED"
	SubmissionReplaced             SubmissionStatus = "REPLACED"
)

// ClaimStatus tracks a single claim through validation.
type ClaimStatus string

const (
	ClaimReadyToProcess ClaimStatus = "READY_TO_PROCESS"
	ClaimValid          ClaimStatus = "VALID"
	ClaimInvalid        ClaimStatus = "INVALID"
	ClaimNotValidated   ClaimStatus = "NOT_VALIDATED"
)

package validators

import (
	"context"
	"regexp"
	"strings"

	"claimvet/internal/domain"
	"claimvet/internal/validation"
)

// fieldRule is one declarative structural check. Findings carry the field
// name and the offending value so providers can locate the problem in their
// upload.
type fieldRule struct {
	field    string
	required bool
	pattern  *regexp.Regexp
	hint     string
}

func (r fieldRule) check(value, scope string, record func(validation.Message)) {
	value = strings.TrimSpace(value)
	if value == "" {
		if r.required {
			record(validation.NewError(
				validation.CodeSubmissionSchemaViolation, validation.SourceSchema,
				"%s: field %q is required", scope, r.field))
		}
		return
	}
	if r.pattern != nil && !r.pattern.MatchString(value) {
		record(validation.NewError(
			validation.CodeSubmissionSchemaViolation, validation.SourceSchema,
			"%s: field %q value %q must be %s", scope, r.field, value, r.hint))
	}
}

var (
	officeAccountPattern = regexp.MustCompile(`^[0-9A-Z]{6}$`)
	periodPattern        = regexp.MustCompile(`^[A-Z]{3}-\d{4}$`)
	feeCodePattern       = regexp.MustCompile(`^[A-Z0-9]{2,10}$`)
	ufnPattern           = regexp.MustCompile(`^\d{6}/\d{3}$`)
)

var submissionRules = []struct {
	rule  fieldRule
	value func(*domain.Submission) string
}{
	{fieldRule{"officeAccountNumber", true, officeAccountPattern, "6 alphanumeric characters"},
		func(s *domain.Submission) string { return s.OfficeAccountNumber }},
	{fieldRule{"submissionPeriod", true, periodPattern, "in MMM-yyyy format"},
		func(s *domain.Submission) string { return s.Period }},
}

var claimRules = []struct {
	rule  fieldRule
	value func(domain.Claim) string
}{
	{fieldRule{"feeCode", true, feeCodePattern, "2-10 upper-case alphanumeric characters"},
		func(c domain.Claim) string { return c.FeeCode }},
	{fieldRule{"uniqueFileNumber", false, ufnPattern, "in DDMMYY/NNN format"},
		func(c domain.Claim) string { return c.UniqueFileNumber }},
}

// SchemaValidator applies the declarative field rules to the submission
// header and every claim.
type SchemaValidator struct{}

func NewSchemaValidator() *SchemaValidator { return &SchemaValidator{} }

func (v *SchemaValidator) Priority() int { return 20 }

func (v *SchemaValidator) Validate(_ context.Context, sub *domain.Submission, vctx *validation.Context) error {
	for _, r := range submissionRules {
		r.rule.check(r.value(sub), "submission", vctx.AddSubmissionError)
	}
	if _, err := domain.ParseAreaOfLaw(string(sub.AreaOfLaw)); err != nil {
		vctx.AddSubmissionError(validation.NewError(
			validation.CodeSubmissionSchemaViolation, validation.SourceSchema,
			"submission: field %q value %q is not a recognized area of law", "areaOfLaw", sub.AreaOfLaw))
	}
	for _, claim := range sub.Claims {
		for _, r := range claimRules {
			record := func(msg validation.Message) { vctx.AddClaimError(claim.ID, msg) }
			r.rule.check(r.value(claim), "claim "+claim.ID.String(), record)
		}
	}
	return nil
}

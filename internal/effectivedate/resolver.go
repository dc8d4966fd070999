// Package effectivedate derives the single authoritative date of a claim
// from its prioritized candidate fields.
package effectivedate

import (
	"regexp"
	"strings"
	"time"

	"claimvet/internal/domain"
	dErrors "claimvet/pkg/domain-errors"
)

// FeeCodeDefenceProd marks "preparation of defence" claims, which prefer the
// case-concluded date over the case-start date.
const FeeCodeDefenceProd = "PROD"

const dateLayout = "2006-01-02"

var ufnPattern = regexp.MustCompile(`^(\d{2})(\d{2})(\d{2})/\d{3}$`)

// Resolve picks the claim's effective date.
//
// For PROD claims the order is case-concluded date, then case-start date.
// For everything else: case-start date, then representation-order date, then
// the date embedded in the unique file number (DDMMYY/NNN). The first
// present candidate must parse; a malformed present field is an error, never
// silently skipped in favor of a later candidate.
func Resolve(claim domain.Claim) (time.Time, error) {
	var candidates []candidate
	if claim.FeeCode == FeeCodeDefenceProd {
		candidates = []candidate{
			{"case concluded date", claim.CaseConcludedDate, parseISODate},
			{"case start date", claim.CaseStartDate, parseISODate},
		}
	} else {
		candidates = []candidate{
			{"case start date", claim.CaseStartDate, parseISODate},
			{"representation order date", claim.RepresentationOrderDate, parseISODate},
			{"unique file number", claim.UniqueFileNumber, parseUFNDate},
		}
	}

	for _, c := range candidates {
		if strings.TrimSpace(c.value) == "" {
			continue
		}
		d, err := c.parse(c.value)
		if err != nil {
			return time.Time{}, dErrors.Newf(dErrors.CodeValidation,
				"claim %s: %s %q is not a valid date", claim.ID, c.field, c.value)
		}
		return d, nil
	}
	return time.Time{}, dErrors.Newf(dErrors.CodeValidation,
		"claim %s has no usable date field", claim.ID)
}

type candidate struct {
	field string
	value string
	parse func(string) (time.Time, error)
}

func parseISODate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}

// parseUFNDate extracts DDMMYY from a unique file number. Two-digit years of
// 50 and above are read as 19xx, below 50 as 20xx.
func parseUFNDate(s string) (time.Time, error) {
	m := ufnPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, dErrors.Newf(dErrors.CodeValidation, "unique file number %q is not DDMMYY/NNN", s)
	}
	day := atoi2(m[1])
	month := atoi2(m[2])
	year := atoi2(m[3])
	if year >= 50 {
		year += 1900
	} else {
		year += 2000
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range components; reject those.
	if d.Day() != day || int(d.Month()) != month {
		return time.Time{}, dErrors.Newf(dErrors.CodeValidation, "unique file number %q encodes an impossible date", s)
	}
	return d, nil
}

func atoi2(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

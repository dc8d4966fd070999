package domain

import (
	"fmt"
	"strings"
)

// AreaOfLaw classifies the legal work in a submission and selects which
// duplicate-claim and mandatory-field rules apply.
type AreaOfLaw string

const (
	AreaLegalHelp  AreaOfLaw = "LEGAL_HELP"
	AreaCrimeLower AreaOfLaw = "CRIME_LOWER"
	AreaMediation  AreaOfLaw = "MEDIATION"
	AreaCivil      AreaOfLaw = "CIVIL"
)

// ParseAreaOfLaw normalizes and validates an area-of-law string.
func ParseAreaOfLaw(s string) (AreaOfLaw, error) {
	area := AreaOfLaw(strings.ToUpper(strings.TrimSpace(s)))
	switch area {
	case AreaLegalHelp, AreaCrimeLower, AreaMediation, AreaCivil:
		return area, nil
	}
	return "", fmt.Errorf("unknown area of law %q", s)
}

func (a AreaOfLaw) String() string { return string(a) }

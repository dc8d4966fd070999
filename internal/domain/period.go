package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Period is a submission period: one calendar month, serialized as MMM-yyyy
// with an upper-case English month abbreviation (for example "MAY-2025").
type Period struct {
	Year  int
	Month time.Month
}

var monthAbbrevs = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
}

// ParsePeriod parses MMM-yyyy. The month abbreviation is case-insensitive;
// the canonical form written back out is upper case.
func ParsePeriod(s string) (Period, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return Period{}, fmt.Errorf("period %q is not in MMM-yyyy format", s)
	}
	month, ok := monthAbbrevs[strings.ToUpper(parts[0])]
	if !ok {
		return Period{}, fmt.Errorf("period %q has an unknown month", s)
	}
	year, err := strconv.Atoi(parts[1])
	if err != nil || year < 1000 || year > 9999 {
		return Period{}, fmt.Errorf("period %q has an invalid year", s)
	}
	return Period{Year: year, Month: month}, nil
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

func (p Period) String() string {
	return fmt.Sprintf("%s-%04d", strings.ToUpper(p.Month.String()[:3]), p.Year)
}

func (p Period) IsZero() bool { return p == Period{} }

// ordinal flattens the period to a comparable month count.
func (p Period) ordinal() int { return p.Year*12 + int(p.Month) - 1 }

func (p Period) Before(other Period) bool { return p.ordinal() < other.ordinal() }

func (p Period) After(other Period) bool { return p.ordinal() > other.ordinal() }

// AddMonths returns the period n months later (earlier for negative n).
func (p Period) AddMonths(n int) Period {
	o := p.ordinal() + n
	y, m := o/12, o%12
	if m < 0 {
		y, m = y-1, m+12
	}
	return Period{Year: y, Month: time.Month(m + 1)}
}

// FirstDay returns midnight UTC on the first day of the period.
func (p Period) FirstDay() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// SubmissionCutoff is the date a submission for this period falls due: the
// 20th day of the following month. Disbursement duplicate windows are
// measured against this date.
func (p Period) SubmissionCutoff() time.Time {
	next := p.AddMonths(1)
	return time.Date(next.Year, next.Month, 20, 0, 0, 0, 0, time.UTC)
}

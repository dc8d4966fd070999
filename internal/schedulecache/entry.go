// Package schedulecache is a read-through cache over the Provider Details
// service. Positive entries accumulate date-range coverage windows per
// office code across calls; negative entries record a "no schedules" answer
// for one (office, effective date) pair.
package schedulecache

import (
	"time"

	"claimvet/internal/validation/ports"
)

// CoverageWindow is an inclusive date range during which an office's
// contract schedule is known to apply.
type CoverageWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Covers reports whether d falls inside the window, bounds included.
func (w CoverageWindow) Covers(d time.Time) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// Entry is one cached office record. Entries are immutable: refreshes build
// a new Entry rather than mutating in place, so readers never observe a
// half-merged window list.
type Entry struct {
	OfficeCode string                   `json:"office_code"`
	Value      *ports.ProviderSchedules `json:"value"`
	Windows    []CoverageWindow         `json:"windows"`
	ExpiresAt  time.Time                `json:"expires_at"`
	Negative   bool                     `json:"negative"`
}

// Covers reports whether any accumulated window contains d. A negative
// entry never covers anything.
func (e *Entry) Covers(d time.Time) bool {
	if e == nil || e.Negative {
		return false
	}
	for _, w := range e.Windows {
		if w.Covers(d) {
			return true
		}
	}
	return false
}

// Expired reports whether the entry has passed its TTL at the given instant.
func (e *Entry) Expired(now time.Time) bool {
	return e == nil || !now.Before(e.ExpiresAt)
}

// mergeWindows unions existing and incoming windows, coalescing overlapping
// or day-adjacent ranges. The result is sorted by start date.
func mergeWindows(existing, incoming []CoverageWindow) []CoverageWindow {
	all := make([]CoverageWindow, 0, len(existing)+len(incoming))
	all = append(all, existing...)
	all = append(all, incoming...)
	if len(all) <= 1 {
		return all
	}
	sortWindows(all)

	merged := all[:1]
	for _, w := range all[1:] {
		last := &merged[len(merged)-1]
		if !w.Start.After(last.End.AddDate(0, 0, 1)) {
			if w.End.After(last.End) {
				last.End = w.End
			}
			continue
		}
		merged = append(merged, w)
	}
	return merged
}

func sortWindows(ws []CoverageWindow) {
	for i := 1; i < len(ws); i++ {
		for j := i; j > 0 && ws[j].Start.Before(ws[j-1].Start); j-- {
			ws[j], ws[j-1] = ws[j-1], ws[j]
		}
	}
}

func windowsOf(schedules *ports.ProviderSchedules) []CoverageWindow {
	if schedules == nil {
		return nil
	}
	out := make([]CoverageWindow, 0, len(schedules.Schedules))
	for _, s := range schedules.Schedules {
		out = append(out, CoverageWindow{Start: s.StartDate, End: s.EndDate})
	}
	return out
}

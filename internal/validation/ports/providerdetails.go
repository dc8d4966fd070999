package ports

import (
	"context"
	"time"

	"claimvet/internal/domain"
)

// Schedule is one contracted schedule line for an office.
type Schedule struct {
	StartDate     time.Time
	EndDate       time.Time
	CategoryOfLaw string
}

// ProviderSchedules is the Provider Details response for one office. A nil
// result with a nil error means the office has no schedules for the query
// (upstream "no content").
type ProviderSchedules struct {
	OfficeCode string
	Schedules  []Schedule
}

// ProviderDetails is the remote office contract/schedule lookup. Transient
// failures are returned with dErrors.CodeUnavailable so callers can retry.
type ProviderDetails interface {
	GetSchedules(ctx context.Context, officeCode string, area domain.AreaOfLaw, effectiveDate time.Time) (*ProviderSchedules, error)
}

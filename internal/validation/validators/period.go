package validators

import (
	"context"
	"time"

	"claimvet/internal/domain"
	"claimvet/internal/validation"
)

// PeriodValidator checks the submission period parses, lies strictly before
// the current month, and is not older than the configured minimum period.
type PeriodValidator struct {
	minimum domain.Period
	clock   func() time.Time
}

func NewPeriodValidator(minimum domain.Period, clock func() time.Time) *PeriodValidator {
	if clock == nil {
		clock = time.Now
	}
	return &PeriodValidator{minimum: minimum, clock: clock}
}

func (v *PeriodValidator) Priority() int { return 50 }

func (v *PeriodValidator) Validate(_ context.Context, sub *domain.Submission, vctx *validation.Context) error {
	period, err := domain.ParsePeriod(sub.Period)
	if err != nil {
		vctx.AddSubmissionError(validation.NewError(
			validation.CodePeriodInvalidFormat, validation.SourcePeriod,
			"submission period %q: %v", sub.Period, err))
		return nil
	}

	current := domain.PeriodOf(v.clock())
	switch {
	case period == current:
		vctx.AddSubmissionError(validation.NewError(
			validation.CodePeriodSameMonth, validation.SourcePeriod,
			"submission period %s equals the current month", period))
	case period.After(current):
		vctx.AddSubmissionError(validation.NewError(
			validation.CodePeriodFutureMonth, validation.SourcePeriod,
			"submission period %s is after the current month %s", period, current))
	case !v.minimum.IsZero() && period.Before(v.minimum):
		vctx.AddSubmissionError(validation.NewError(
			validation.CodePeriodBelowMinimum, validation.SourcePeriod,
			"submission period %s is before the minimum accepted period %s", period, v.minimum))
	}
	return nil
}

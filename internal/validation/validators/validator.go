// Package validators holds the ordered submission-level checks. Each
// validator is independent: it reads the submission, writes findings into
// the shared run context, and never assumes another validator has run -
// except that the status validator gates the whole chain.
package validators

import (
	"context"
	"errors"
	"sort"

	"claimvet/internal/domain"
	"claimvet/internal/validation"
)

// ErrStopValidation is returned by a validator to halt the chain cleanly.
// Findings already recorded stand; no further validators run.
var ErrStopValidation = errors.New("submission validation stopped")

// SubmissionValidator is one check in the chain. A returned error other
// than ErrStopValidation aborts the run as an integration failure.
type SubmissionValidator interface {
	Priority() int
	Validate(ctx context.Context, sub *domain.Submission, vctx *validation.Context) error
}

// Chain runs validators in ascending priority. Ties keep registration
// order, so iteration is stable across runs.
type Chain struct {
	validators []SubmissionValidator
}

// NewChain sorts the given validators by priority, preserving registration
// order for equal priorities.
func NewChain(vs ...SubmissionValidator) *Chain {
	sorted := make([]SubmissionValidator, len(vs))
	copy(sorted, vs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Priority() < sorted[j].Priority()
	})
	return &Chain{validators: sorted}
}

// Run executes the chain. halted reports that a validator stopped the chain
// via ErrStopValidation: findings already recorded stand, but the caller
// must not continue into per-claim checks or status writes.
func (c *Chain) Run(ctx context.Context, sub *domain.Submission, vctx *validation.Context) (halted bool, err error) {
	for _, v := range c.validators {
		if err := v.Validate(ctx, sub, vctx); err != nil {
			if errors.Is(err, ErrStopValidation) {
				return true, nil
			}
			return false, err
		}
	}
	return false, nil
}

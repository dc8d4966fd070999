// Package service orchestrates one validation run per submission: load,
// gate on status, run the validator chain, check each claim, then write the
// outcome back to the Claims Data service.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"claimvet/internal/audit"
	"claimvet/internal/domain"
	"claimvet/internal/schedulecache"
	"claimvet/internal/validation"
	"claimvet/internal/validation/metrics"
	"claimvet/internal/validation/ports"
	"claimvet/internal/validation/validators"
	dErrors "claimvet/pkg/domain-errors"
)

// AuditPublisher receives the outcome of a completed run. Emission never
// fails the run.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event)
}

// Service is the validation orchestrator. One call to ValidateSubmission is
// one run; runs for different submissions may execute concurrently and
// share nothing but the schedule cache.
type Service struct {
	claims ports.ClaimsData
	fees   ports.FeeScheme
	cache  *schedulecache.Cache

	logger        *slog.Logger
	metrics       *metrics.Metrics
	auditor       AuditPublisher
	tracer        trace.Tracer
	clock         func() time.Time
	minPeriod     domain.Period
	earliestClaim time.Time

	chain *validators.Chain
}

// Option configures the service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditor = p }
}

// WithMinimumPeriod sets the earliest submission period accepted.
func WithMinimumPeriod(p domain.Period) Option {
	return func(s *Service) { s.minPeriod = p }
}

// WithEarliestClaimDate sets the lower bound of the per-claim date range
// check.
func WithEarliestClaimDate(d time.Time) Option {
	return func(s *Service) { s.earliestClaim = d }
}

// WithClock replaces the wall clock, mainly for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// New wires the orchestrator and builds the validator chain once. The chain
// order is fixed: status gate, schema, nil-submission, provider contract,
// period, uniqueness.
func New(claims ports.ClaimsData, fees ports.FeeScheme, cache *schedulecache.Cache, opts ...Option) (*Service, error) {
	if claims == nil {
		return nil, errors.New("claims data client is required")
	}
	if fees == nil {
		return nil, errors.New("fee scheme client is required")
	}
	if cache == nil {
		return nil, errors.New("schedule cache is required")
	}

	s := &Service{
		claims: claims,
		fees:   fees,
		cache:  cache,
		logger: slog.Default(),
		tracer: otel.Tracer("claimvet/validation"),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.chain = validators.NewChain(
		validators.NewStatusValidator(claims, s.logger),
		validators.NewSchemaValidator(),
		validators.NewNilSubmissionValidator(),
		validators.NewContractValidator(cache, s.logger),
		validators.NewPeriodValidator(s.minPeriod, s.clock),
		validators.NewUniquenessValidator(claims),
	)
	return s, nil
}

// ValidateSubmission runs the full validation for one submission id and
// returns the accumulated context. An error return means the run itself
// failed (retrieval or write-back); findings never surface as errors.
func (s *Service) ValidateSubmission(ctx context.Context, submissionID uuid.UUID) (*validation.Context, error) {
	start := s.clock()
	ctx, span := s.tracer.Start(ctx, "validation.run",
		trace.WithAttributes(attribute.String("submission.id", submissionID.String())))
	defer span.End()

	sub, err := s.claims.GetSubmission(ctx, submissionID)
	if err != nil {
		s.metrics.RecordRun("error", s.clock().Sub(start))
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "retrieve submission")
	}
	if sub == nil {
		s.metrics.RecordRun("error", s.clock().Sub(start))
		return nil, dErrors.Newf(dErrors.CodeNotFound, "submission %s not found", submissionID)
	}
	span.SetAttributes(
		attribute.String("submission.office", sub.OfficeAccountNumber),
		attribute.String("submission.area_of_law", string(sub.AreaOfLaw)),
	)

	vctx := validation.NewContext()

	halted, err := s.chain.Run(ctx, sub, vctx)
	if err != nil {
		s.metrics.RecordRun("error", s.clock().Sub(start))
		return nil, err
	}

	if !halted && len(sub.Claims) > 0 {
		if err := s.validateClaims(ctx, sub, vctx); err != nil {
			s.metrics.RecordRun("error", s.clock().Sub(start))
			return nil, err
		}
	}

	outcome := "halted"
	if !halted {
		outcome, err = s.finalize(ctx, sub, vctx)
		if err != nil {
			s.metrics.RecordRun("error", s.clock().Sub(start))
			return nil, err
		}
	}

	s.observe(ctx, sub, vctx, outcome, s.clock().Sub(start))
	return vctx, nil
}

// finalize derives the terminal status and writes per-claim patches and the
// submission status back to the Claims Data service.
func (s *Service) finalize(ctx context.Context, sub *domain.Submission, vctx *validation.Context) (string, error) {
	for _, claim := range sub.Claims {
		patch := ports.ClaimPatch{Status: domain.ClaimValid}
		if report := vctx.ClaimReport(claim.ID); report != nil && vctx.HasClaimErrors(claim.ID) {
			patch.Status = domain.ClaimInvalid
			for _, m := range report.Messages {
				patch.Messages = append(patch.Messages, string(m.Code)+": "+m.Technical)
			}
		}
		if err := s.claims.UpdateClaim(ctx, sub.ID, claim.ID, patch); err != nil {
			return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "write claim patch")
		}
	}

	status := domain.SubmissionValidationSucceeded
	outcome := "succeeded"
	if vctx.HasErrors() {
		status = domain.SubmissionValidationFailed
		outcome = "failed"
	}
	if err := s.claims.UpdateSubmissionStatus(ctx, sub.ID, status); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeUnavailable, "write final submission status")
	}
	return outcome, nil
}

func (s *Service) observe(ctx context.Context, sub *domain.Submission, vctx *validation.Context, outcome string, elapsed time.Duration) {
	claimErrors := 0
	for _, r := range vctx.ClaimReports() {
		claimErrors += len(r.Messages)
	}
	for _, m := range vctx.SubmissionMessages() {
		s.metrics.RecordFinding(string(m.Code), string(m.Source))
	}
	for _, r := range vctx.ClaimReports() {
		for _, m := range r.Messages {
			s.metrics.RecordFinding(string(m.Code), string(m.Source))
		}
	}
	s.metrics.RecordRun(outcome, elapsed)

	s.logger.InfoContext(ctx, "validation run complete",
		"submission_id", sub.ID,
		"office_code", sub.OfficeAccountNumber,
		"area_of_law", sub.AreaOfLaw,
		"outcome", outcome,
		"submission_findings", len(vctx.SubmissionMessages()),
		"claim_findings", claimErrors,
		"duration_ms", elapsed.Milliseconds(),
	)

	if s.auditor != nil {
		s.auditor.Emit(ctx, audit.Event{
			ID:               uuid.New(),
			SubmissionID:     sub.ID,
			OfficeCode:       sub.OfficeAccountNumber,
			AreaOfLaw:        string(sub.AreaOfLaw),
			Outcome:          outcome,
			SubmissionErrors: len(vctx.SubmissionMessages()),
			ClaimErrors:      claimErrors,
			Duration:         elapsed,
			OccurredAt:       s.clock(),
		})
	}
}

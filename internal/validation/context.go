package validation

import "github.com/google/uuid"

// ClaimReport accumulates the findings for one claim within a run.
type ClaimReport struct {
	ClaimID  uuid.UUID
	Messages []Message
	Retry    bool
}

// Context is the mutable result accumulator for exactly one validation run.
// It is created at the start of ValidateSubmission, threaded through every
// validator, and discarded when the run finishes. Additions are append-only;
// a claim id maps to at most one report. Not safe for concurrent use - a run
// is single-threaded by construction.
type Context struct {
	submissionMessages []Message
	reports            map[uuid.UUID]*ClaimReport
	order              []uuid.UUID
}

// NewContext returns an empty accumulator for a single run.
func NewContext() *Context {
	return &Context{reports: make(map[uuid.UUID]*ClaimReport)}
}

// AddSubmissionError appends a submission-level finding.
func (c *Context) AddSubmissionError(msg Message) {
	c.submissionMessages = append(c.submissionMessages, msg)
}

// AddClaimError appends one finding to the claim's report, creating the
// report on first use.
func (c *Context) AddClaimError(claimID uuid.UUID, msg Message) {
	c.report(claimID).Messages = append(c.report(claimID).Messages, msg)
}

// AddClaimMessages appends several findings to the claim's report.
func (c *Context) AddClaimMessages(claimID uuid.UUID, msgs []Message) {
	r := c.report(claimID)
	r.Messages = append(r.Messages, msgs...)
}

// FlagForRetry marks the claim's report so the caller can requeue it.
func (c *Context) FlagForRetry(claimID uuid.UUID) {
	c.report(claimID).Retry = true
}

// ClaimReport returns the report for claimID, or nil if the claim has no
// findings and was never flagged.
func (c *Context) ClaimReport(claimID uuid.UUID) *ClaimReport {
	return c.reports[claimID]
}

// SubmissionMessages returns submission-level findings in insertion order.
func (c *Context) SubmissionMessages() []Message {
	return c.submissionMessages
}

// ClaimReports returns all claim reports in first-touch order.
func (c *Context) ClaimReports() []*ClaimReport {
	out := make([]*ClaimReport, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.reports[id])
	}
	return out
}

// HasErrors reports whether any submission-level or claim-level ERROR
// finding was recorded.
func (c *Context) HasErrors() bool {
	for _, m := range c.submissionMessages {
		if m.Severity == SeverityError {
			return true
		}
	}
	for _, r := range c.reports {
		if hasError(r.Messages) {
			return true
		}
	}
	return false
}

// HasClaimErrors reports whether the given claim accumulated any ERROR.
func (c *Context) HasClaimErrors(claimID uuid.UUID) bool {
	r := c.reports[claimID]
	return r != nil && hasError(r.Messages)
}

func (c *Context) report(claimID uuid.UUID) *ClaimReport {
	r, ok := c.reports[claimID]
	if !ok {
		r = &ClaimReport{ClaimID: claimID}
		c.reports[claimID] = r
		c.order = append(c.order, claimID)
	}
	return r
}

func hasError(msgs []Message) bool {
	for _, m := range msgs {
		if m.Severity == SeverityError {
			return true
		}
	}
	return false
}

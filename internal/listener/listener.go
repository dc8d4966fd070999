// Package listener consumes validation-request events from Kafka and feeds
// them to the orchestrator. Offsets are committed only after a run
// completes, so an instance dying mid-validation redelivers the message
// instead of losing it.
package listener

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/sync/errgroup"

	"claimvet/internal/validation"
)

// Service runs one validation per submission id.
type Service interface {
	ValidateSubmission(ctx context.Context, submissionID uuid.UUID) (*validation.Context, error)
}

// event is the inbound message payload.
type event struct {
	SubmissionID uuid.UUID `json:"submissionId"`
}

// Listener owns the consumer-group client and the worker pool.
type Listener struct {
	client  *kgo.Client
	service Service
	logger  *slog.Logger
	workers int
}

// New connects a consumer group to the validation-request topic.
func New(brokers []string, topic, group string, service Service, logger *slog.Logger, workers int) (*Listener, error) {
	if workers <= 0 {
		workers = 4
	}
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ConsumerGroup(group),
		kgo.ConsumeTopics(topic),
		kgo.DisableAutoCommit(),
	)
	if err != nil {
		return nil, err
	}
	return &Listener{client: client, service: service, logger: logger, workers: workers}, nil
}

// Run polls until ctx is cancelled. Records in a poll are validated
// concurrently up to the worker limit; each record is committed on its own
// once its run finishes. Runs that fail on a transient error are left
// uncommitted for redelivery; poison messages are committed and dropped.
func (l *Listener) Run(ctx context.Context) error {
	defer l.client.Close()

	for {
		fetches := l.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return ctx.Err()
		}
		fetches.EachError(func(topic string, partition int32, err error) {
			l.logger.ErrorContext(ctx, "kafka fetch error",
				"topic", topic, "partition", partition, "error", err)
		})

		var (
			mu   sync.Mutex
			done []*kgo.Record
		)
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(l.workers)
		fetches.EachRecord(func(record *kgo.Record) {
			g.Go(func() error {
				if l.process(gctx, record) {
					mu.Lock()
					done = append(done, record)
					mu.Unlock()
				}
				return nil
			})
		})
		_ = g.Wait()

		if len(done) > 0 {
			if err := l.client.CommitRecords(ctx, done...); err != nil {
				l.logger.ErrorContext(ctx, "offset commit failed", "error", err)
			}
		}
	}
}

// process returns true when the record's offset may be committed.
func (l *Listener) process(ctx context.Context, record *kgo.Record) bool {
	var ev event
	if err := json.Unmarshal(record.Value, &ev); err != nil || ev.SubmissionID == uuid.Nil {
		// Malformed payloads are contract errors: no retry will fix them.
		l.logger.ErrorContext(ctx, "dropping malformed validation request",
			"topic", record.Topic,
			"offset", record.Offset,
			"error", err,
		)
		return true
	}

	if _, err := l.service.ValidateSubmission(ctx, ev.SubmissionID); err != nil {
		l.logger.ErrorContext(ctx, "validation run failed, leaving message for redelivery",
			"submission_id", ev.SubmissionID,
			"error", err,
		)
		return false
	}
	return true
}

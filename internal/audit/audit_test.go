package audit

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func event(outcome string) Event {
	return Event{
		ID:           uuid.New(),
		SubmissionID: uuid.New(),
		OfficeCode:   "1A2B3C",
		AreaOfLaw:    "CIVIL",
		Outcome:      outcome,
		Duration:     120 * time.Millisecond,
		OccurredAt:   time.Now().UTC(),
	}
}

func TestPublisher_EmitAndDrain(t *testing.T) {
	p := NewPublisher(4, nil)
	first := event("succeeded")
	second := event("failed")

	p.Emit(context.Background(), first)
	p.Emit(context.Background(), second)

	got := <-p.Inbox()
	assert.Equal(t, first.ID, got.ID)
	got = <-p.Inbox()
	assert.Equal(t, second.ID, got.ID)
}

func TestPublisher_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	p := NewPublisher(1, nil)

	p.Emit(context.Background(), event("succeeded"))

	done := make(chan struct{})
	go func() {
		p.Emit(context.Background(), event("failed"))
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full buffer")
	}

	// Only the first event survives.
	<-p.Inbox()
	select {
	case extra := <-p.Inbox():
		t.Fatalf("unexpected extra event %s", extra.ID)
	default:
	}
}

func TestWorker_PersistsUntilCancelled(t *testing.T) {
	p := NewPublisher(8, nil)
	store := NewMemoryStore()
	worker := NewWorker(store, p.Inbox(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan error, 1)
	go func() { finished <- worker.Run(ctx) }()

	want := event("succeeded")
	p.Emit(ctx, want)

	require.Eventually(t, func() bool {
		return len(store.Events()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, want.ID, store.Events()[0].ID)

	cancel()
	select {
	case err := <-finished:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("worker did not stop on cancel")
	}
}

func TestWorker_StoreFailureDoesNotStopTheLoop(t *testing.T) {
	p := NewPublisher(8, nil)
	store := &flakyStore{failFirst: true, MemoryStore: NewMemoryStore()}
	worker := NewWorker(store, p.Inbox(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = worker.Run(ctx) }()

	p.Emit(ctx, event("failed"))
	survivor := event("succeeded")
	p.Emit(ctx, survivor)

	require.Eventually(t, func() bool {
		return len(store.Events()) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, survivor.ID, store.Events()[0].ID)
}

type flakyStore struct {
	*MemoryStore
	failFirst bool
}

func (s *flakyStore) Append(ctx context.Context, e Event) error {
	if s.failFirst {
		s.failFirst = false
		return context.DeadlineExceeded
	}
	return s.MemoryStore.Append(ctx, e)
}

package schedulecache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"claimvet/internal/domain"
	"claimvet/internal/validation/ports"
	dErrors "claimvet/pkg/domain-errors"
)

const (
	// upstreamAttempts is the total number of Provider Details calls made
	// for one refresh before the failure propagates to the caller.
	upstreamAttempts = 3

	defaultTTL = 15 * time.Minute
)

// Cache answers schedule lookups from accumulated coverage windows before
// falling back to the Provider Details service. One office code maps to one
// positive entry whose windows grow across calls made for different
// effective dates; "no schedules" answers are cached negatively per
// (office, effective date).
type Cache struct {
	store    Store
	upstream ports.ProviderDetails
	ttl      time.Duration
	logger   *slog.Logger
	metrics  *Metrics
	clock    func() time.Time

	group singleflight.Group

	mu      sync.Mutex
	offices map[string]*sync.Mutex
}

// Option configures a Cache.
type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) { c.ttl = ttl }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Cache) { c.logger = logger }
}

func WithMetrics(m *Metrics) Option {
	return func(c *Cache) { c.metrics = m }
}

// withClock is test seam only.
func withClock(clock func() time.Time) Option {
	return func(c *Cache) { c.clock = clock }
}

// New builds a cache over the given store and upstream client.
func New(store Store, upstream ports.ProviderDetails, opts ...Option) *Cache {
	c := &Cache{
		store:    store,
		upstream: upstream,
		ttl:      defaultTTL,
		logger:   slog.Default(),
		clock:    time.Now,
		offices:  make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schedules resolves the office's schedules for the effective date. A
// (nil, nil) return means the office has no schedules for that date. After
// three failed upstream attempts the transient failure propagates with
// dErrors.CodeUnavailable; callers record it as a finding, not a crash.
func (c *Cache) Schedules(ctx context.Context, officeCode string, area domain.AreaOfLaw, effectiveDate time.Time) (*ports.ProviderSchedules, error) {
	now := c.clock()

	entry, err := c.store.Get(ctx, positiveKey(officeCode))
	if err != nil {
		return nil, err
	}
	if entry != nil && !entry.Expired(now) && entry.Covers(effectiveDate) {
		c.metrics.RecordLookup("hit")
		// Sliding TTL: reusing a positive entry extends its life.
		refreshed := *entry
		refreshed.ExpiresAt = now.Add(c.ttl)
		if err := c.store.Put(ctx, positiveKey(officeCode), &refreshed, c.ttl); err != nil {
			c.logger.WarnContext(ctx, "schedule cache expiry refresh failed",
				"office_code", officeCode, "error", err)
		}
		return entry.Value, nil
	}

	negative, err := c.store.Get(ctx, negativeKey(officeCode, effectiveDate))
	if err != nil {
		return nil, err
	}
	if negative != nil && !negative.Expired(now) {
		// Negative reuse does not slide the TTL; a stale "no schedules"
		// should age out and re-query.
		c.metrics.RecordLookup("negative_hit")
		return nil, nil
	}

	c.metrics.RecordLookup("miss")
	return c.refresh(ctx, officeCode, area, effectiveDate)
}

// Covers reports whether the office's accumulated windows contain d without
// touching upstream. Mainly a test and introspection hook.
func (c *Cache) Covers(ctx context.Context, officeCode string, d time.Time) bool {
	entry, err := c.store.Get(ctx, positiveKey(officeCode))
	if err != nil {
		return false
	}
	return entry != nil && !entry.Expired(c.clock()) && entry.Covers(d)
}

// refresh queries upstream and folds the answer into the cache. Concurrent
// refreshes for the same (office, date) collapse into one upstream call;
// merges for the same office are serialized so no window update is lost.
func (c *Cache) refresh(ctx context.Context, officeCode string, area domain.AreaOfLaw, effectiveDate time.Time) (*ports.ProviderSchedules, error) {
	key := negativeKey(officeCode, effectiveDate)
	v, err, _ := c.group.Do(key, func() (any, error) {
		schedules, err := c.fetchWithRetry(ctx, officeCode, area, effectiveDate)
		if err != nil {
			return nil, err
		}

		lock := c.officeLock(officeCode)
		lock.Lock()
		defer lock.Unlock()

		now := c.clock()
		if schedules == nil || len(schedules.Schedules) == 0 {
			negative := &Entry{
				OfficeCode: officeCode,
				ExpiresAt:  now.Add(c.ttl),
				Negative:   true,
			}
			if err := c.store.Put(ctx, key, negative, c.ttl); err != nil {
				return nil, err
			}
			return (*ports.ProviderSchedules)(nil), nil
		}

		existing, err := c.store.Get(ctx, positiveKey(officeCode))
		if err != nil {
			return nil, err
		}
		var prior []CoverageWindow
		if existing != nil && !existing.Negative {
			prior = existing.Windows
		}
		entry := &Entry{
			OfficeCode: officeCode,
			Value:      schedules,
			Windows:    mergeWindows(prior, windowsOf(schedules)),
			ExpiresAt:  now.Add(c.ttl),
		}
		if err := c.store.Put(ctx, positiveKey(officeCode), entry, c.ttl); err != nil {
			return nil, err
		}
		return schedules, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*ports.ProviderSchedules), nil
}

func (c *Cache) fetchWithRetry(ctx context.Context, officeCode string, area domain.AreaOfLaw, effectiveDate time.Time) (*ports.ProviderSchedules, error) {
	var lastErr error
	for attempt := 1; attempt <= upstreamAttempts; attempt++ {
		c.metrics.RecordUpstreamCall()
		schedules, err := c.upstream.GetSchedules(ctx, officeCode, area, effectiveDate)
		if err == nil {
			return schedules, nil
		}
		if !dErrors.HasCode(err, dErrors.CodeUnavailable) {
			return nil, err
		}
		lastErr = err
		if attempt < upstreamAttempts {
			c.metrics.RecordRetry()
			c.logger.WarnContext(ctx, "provider details call failed, retrying",
				"office_code", officeCode,
				"attempt", attempt,
				"error", err,
			)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
			}
		}
	}
	return nil, dErrors.Wrap(lastErr, dErrors.CodeUnavailable,
		fmt.Sprintf("provider details unavailable after %d attempts", upstreamAttempts))
}

func (c *Cache) officeLock(officeCode string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.offices[officeCode]
	if !ok {
		lock = &sync.Mutex{}
		c.offices[officeCode] = lock
	}
	return lock
}

func positiveKey(officeCode string) string {
	return "office:" + officeCode
}

func negativeKey(officeCode string, effectiveDate time.Time) string {
	return "office:" + officeCode + ":" + effectiveDate.Format("2006-01-02")
}

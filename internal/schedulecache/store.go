package schedulecache

import (
	"context"
	"time"
)

// Store persists cache entries. Get returns (nil, nil) when the key is
// absent or already expired by the store's own reckoning; the cache still
// re-checks expiry so stores without native TTL stay correct.
type Store interface {
	Get(ctx context.Context, key string) (*Entry, error)
	Put(ctx context.Context, key string, entry *Entry, ttl time.Duration) error
}

package schedulecache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	dErrors "claimvet/pkg/domain-errors"
)

const redisKeyPrefix = "schedules:"

// RedisStore shares cache entries across validator instances. Entries are
// stored as JSON with Redis-native TTL so eviction needs no sweeper.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Entry, error) {
	raw, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "read schedule cache entry")
	}
	var e Entry
	if err := json.Unmarshal(raw, &e); err != nil {
		// A corrupt entry behaves like a miss; the next refresh overwrites it.
		return nil, nil
	}
	return &e, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, entry *Entry, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "encode schedule cache entry")
	}
	if err := s.client.Set(ctx, redisKeyPrefix+key, raw, ttl).Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "write schedule cache entry")
	}
	return nil
}

package schedulecache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the default single-instance store.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	clock   func() time.Time
}

// NewMemoryStore builds an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*Entry),
		clock:   time.Now,
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Entry, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok || e.Expired(s.clock()) {
		return nil, nil
	}
	return e, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, entry *Entry, _ time.Duration) error {
	s.mu.Lock()
	s.entries[key] = entry
	s.mu.Unlock()
	return nil
}

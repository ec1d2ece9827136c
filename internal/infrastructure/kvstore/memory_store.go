package kvstore

import (
	"context"
	"sync"

	"github.com/alexisbeaulieu97/motionkit/internal/ports"
)

// MemoryStore keeps keys in memory. It backs tests and the --ephemeral demo.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemoryStore returns a store seeded with the given entries.
func NewMemoryStore(seed map[string]string) *MemoryStore {
	entries := make(map[string]string, len(seed))
	for k, v := range seed {
		entries[k] = v
	}
	return &MemoryStore{entries: entries}
}

// Get implements ports.KeyValueStore.
func (s *MemoryStore) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.entries[key]
	if !ok {
		return "", ports.ErrKeyNotFound
	}
	return value, nil
}

// Set implements ports.KeyValueStore.
func (s *MemoryStore) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = value
	return nil
}

// Delete implements ports.KeyValueStore.
func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

var _ ports.KeyValueStore = (*MemoryStore)(nil)

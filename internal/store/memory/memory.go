package memory

import (
	"context"
	"sync"

	"gymtrack/gym-app/internal/store"
)

// memoryStore implements store.RecordStore with an in-process map. It backs
// tests and local development where neither Redis nor MongoDB is available.
type memoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New creates an empty in-memory record store.
func New() store.RecordStore {
	return &memoryStore{data: make(map[string][]byte)}
}

func (s *memoryStore) Read(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[key]
	if !ok {
		return nil, nil
	}
	// Copy so callers cannot mutate the stored payload in place.
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *memoryStore) WriteAll(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	s.data[key] = stored
	return nil
}

func (s *memoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return nil
}

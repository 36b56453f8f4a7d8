package sessions

import (
	"sync"
)

// MemoryStore is an in-process Store. It backs tests and single-node
// development runs; production uses PostgresStore.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]Payload
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]Payload)}
}

func (s *MemoryStore) Get(key string) (Payload, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.data[key]
	return p, ok, nil
}

func (s *MemoryStore) Set(key string, p Payload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = p
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

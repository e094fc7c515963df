package draft

import (
	"context"
	"sync"
)

// MemoryStore is the volatile scope: it lives exactly as long as the process
// and is also the store of choice in tests.
type MemoryStore struct {
	mu     sync.Mutex
	record Record
	exists bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore constructs an empty volatile store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = record.clone()
	s.exists = true
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.exists {
		return Record{}, false, nil
	}
	return s.record.clone(), true, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record = Record{}
	s.exists = false
	return nil
}

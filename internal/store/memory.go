package store

import (
	"context"
	"sync"
)

// MemGateway is a map-backed gateway for tests and throwaway dev runs.
type MemGateway struct {
	mu   sync.RWMutex
	data map[string][]byte

	// FailSaves makes every Save return this error; tests use it to exercise
	// the fire-and-forget persistence policy.
	FailSaves error
}

func NewMemGateway() *MemGateway {
	return &MemGateway{data: map[string][]byte{}}
}

func (s *MemGateway) Load(_ context.Context, collection string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	raw, ok := s.data[collection]
	if !ok {
		return nil, ErrNotFound
	}
	return raw, nil
}

func (s *MemGateway) Save(_ context.Context, collection string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FailSaves != nil {
		return s.FailSaves
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.data[collection] = cp
	return nil
}

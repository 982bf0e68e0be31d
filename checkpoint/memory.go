package checkpoint

import (
	"context"
	"sync"
)

// MemoryStore keeps checkpoints in process memory. It exists for tests and
// for sweeps where durability is explicitly unwanted.
type MemoryStore struct {
	mu     sync.Mutex
	states map[int]*State
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[int]*State),
	}
}

// Load returns the checkpoint for k, or ErrNotFound.
func (s *MemoryStore) Load(_ context.Context, k int) (*State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.states[k]
	if !ok {
		return nil, ErrNotFound
	}
	return st.Clone(), nil
}

// Save replaces the checkpoint for st.K.
func (s *MemoryStore) Save(_ context.Context, st *State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[st.K] = st.Clone()
	return nil
}

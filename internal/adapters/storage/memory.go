package storage

import (
	"context"
	"sync"

	"github.com/okian/gridiron/internal/domain/model"
)

// MemoryStore implements Store with an in-process map. It is the
// default backend and the one used in tests.
type MemoryStore struct {
	mu     sync.RWMutex
	saves  map[string][]model.SavedRanking
	opts   options
	closed bool
}

// NewMemoryStore creates an in-memory store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	return &MemoryStore{
		saves: make(map[string][]model.SavedRanking),
		opts:  newOptions(opts...),
	}
}

// Append adds a record under key, evicting the oldest at the cap.
func (s *MemoryStore) Append(ctx context.Context, key string, rec model.SavedRanking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	recs := append(s.saves[key], rec)
	if len(recs) > s.opts.maxPerKey {
		recs = recs[len(recs)-s.opts.maxPerKey:]
	}
	s.saves[key] = recs
	return nil
}

// List returns all records under key, oldest first.
func (s *MemoryStore) List(ctx context.Context, key string) ([]model.SavedRanking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	recs := s.saves[key]
	out := make([]model.SavedRanking, len(recs))
	copy(out, recs)
	return out, nil
}

// Delete removes the record at index under key.
func (s *MemoryStore) Delete(ctx context.Context, key string, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	recs := s.saves[key]
	if index < 0 || index >= len(recs) {
		return ErrNoSuchSave
	}
	s.saves[key] = append(recs[:index], recs[index+1:]...)
	return nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

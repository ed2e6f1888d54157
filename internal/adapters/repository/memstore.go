package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/edruela/volleyball-simulator/internal/domain/model"
	"github.com/edruela/volleyball-simulator/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultMaxSize = 10_000
)

// MemoryStore implements Store with a bounded in-memory map plus an
// insertion-ordered id list for recency queries and eviction.
type MemoryStore struct {
	mu      sync.RWMutex
	results map[string]model.MatchResult
	order   []string // insertion order, oldest first
	maxSize int
}

// NewMemoryStore creates a bounded in-memory result store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		results: make(map[string]model.MatchResult),
		maxSize: defaultMaxSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	metrics.UpdateStoredMatches(0)
	return s
}

// Put records a finished match result, evicting the oldest entry when the
// bound is reached.
func (s *MemoryStore) Put(_ context.Context, result model.MatchResult) error {
	if result.MatchID == "" {
		return ErrEmptyMatchID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[result.MatchID]; !exists {
		if len(s.order) >= s.maxSize {
			oldest := s.order[0]
			s.order = s.order[1:]
			delete(s.results, oldest)
		}
		s.order = append(s.order, result.MatchID)
	}
	s.results[result.MatchID] = result
	metrics.UpdateStoredMatches(len(s.results))
	return nil
}

// Get returns the result for a match id.
func (s *MemoryStore) Get(_ context.Context, matchID string) (model.MatchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[matchID]
	if !ok {
		return model.MatchResult{}, fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	return result, nil
}

// Recent returns up to n results, most recent first.
func (s *MemoryStore) Recent(_ context.Context, n int) ([]model.MatchResult, error) {
	if n < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n > len(s.order) {
		n = len(s.order)
	}
	out := make([]model.MatchResult, 0, n)
	for i := len(s.order) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.results[s.order[i]])
	}
	return out, nil
}

// Count returns the number of stored results.
func (s *MemoryStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

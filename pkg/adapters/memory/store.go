package memory

import (
	"context"
	"sync"

	"github.com/waylinehq/wayline/pkg/domain"
)

// Store implements ports.ContextStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.JourneyContext
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.JourneyContext),
	}
}

// Save persists the context in memory. The stored snapshot is a deep copy,
// isolated from later mutation by the caller.
func (s *Store) Save(ctx context.Context, journeyID string, jctx *domain.JourneyContext) error {
	snapshot := jctx.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[journeyID] = snapshot
	return nil
}

// Load retrieves the context from memory.
func (s *Store) Load(ctx context.Context, journeyID string) (*domain.JourneyContext, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jctx, ok := s.data[journeyID]
	if !ok {
		return nil, domain.ErrJourneyNotFound
	}

	// Copy on read so the caller can't mutate store state through the pointer.
	return jctx.Clone(), nil
}

// Delete removes the context.
func (s *Store) Delete(ctx context.Context, journeyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, journeyID)
	return nil
}

// List returns stored journey IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	return ids, nil
}

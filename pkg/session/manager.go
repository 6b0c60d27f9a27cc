package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/waylinehq/wayline/internal/logging"
	"github.com/waylinehq/wayline/pkg/domain"
	"github.com/waylinehq/wayline/pkg/ports"
)

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu     sync.Mutex
	refs   int
	unlock ports.UnlockFunc
}

// Manager orchestrates journey access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.ContextStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker ports.DistributedLocker // Optional distributed locker
	logger *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLogger configures a logger for deferred errors.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a session manager over the given context store.
func NewManager(store ports.ContextStore, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		locks:  make(map[string]*lockEntry),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, then call release(journeyID) after unlocking.
func (m *Manager) acquire(journeyID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[journeyID]
	if !exists {
		entry = &lockEntry{}
		m.locks[journeyID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(journeyID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[journeyID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, journeyID)
	}
}

// Load retrieves an existing journey context from the store.
func (m *Manager) Load(ctx context.Context, journeyID string) (*domain.JourneyContext, error) {
	var jctx *domain.JourneyContext
	err := m.WithLock(ctx, journeyID, func(ctx context.Context) error {
		var err error
		jctx, err = m.store.Load(ctx, journeyID)
		return err
	})
	return jctx, err
}

// LoadOrStart tries to load a journey. If not found, it seeds an empty
// context and persists it immediately to reserve the ID.
func (m *Manager) LoadOrStart(ctx context.Context, journeyID string) (*domain.JourneyContext, error) {
	var jctx *domain.JourneyContext
	err := m.WithLock(ctx, journeyID, func(ctx context.Context) error {
		var err error
		jctx, err = m.store.Load(ctx, journeyID)
		if err == nil {
			return nil
		}
		if err != domain.ErrJourneyNotFound {
			return fmt.Errorf("failed to check journey existence: %w", err)
		}

		jctx = domain.NewJourneyContext()
		if err := m.store.Save(ctx, journeyID, jctx); err != nil {
			return fmt.Errorf("failed to initialize journey: %w", err)
		}
		return nil
	})
	return jctx, err
}

// Save persists the journey context.
func (m *Manager) Save(ctx context.Context, journeyID string, jctx *domain.JourneyContext) error {
	return m.WithLock(ctx, journeyID, func(ctx context.Context) error {
		return m.store.Save(ctx, journeyID, jctx)
	})
}

// Delete removes the journey from the store.
func (m *Manager) Delete(ctx context.Context, journeyID string) error {
	return m.WithLock(ctx, journeyID, func(ctx context.Context) error {
		return m.store.Delete(ctx, journeyID)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying context store.
func (m *Manager) Store() ports.ContextStore {
	return m.store
}

// WithLock executes fn while holding the lock for the journey.
func (m *Manager) WithLock(ctx context.Context, journeyID string, fn func(context.Context) error) error {
	entry := m.acquire(journeyID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(journeyID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, journeyID, 30*time.Second)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"journey_id", journeyID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

package cart

import (
	"context"
	"log"
	"sync"

	"chickpick/internal/cache"

	"github.com/google/uuid"
)

// Manager hands out one Store per browsing session. A session seen for the
// first time after a restart is rehydrated from the stash.
type Manager struct {
	mu     sync.Mutex
	stash  cache.Stash
	logger *log.Logger
	stores map[string]*Store
}

func NewManager(stash cache.Stash, logger *log.Logger) *Manager {
	return &Manager{
		stash:  stash,
		logger: logger,
		stores: make(map[string]*Store),
	}
}

// NewSessionID mints an opaque session identifier.
func (m *Manager) NewSessionID() string {
	return uuid.NewString()
}

// Store returns the cart store for the session, creating it on first use.
func (m *Manager) Store(ctx context.Context, sessionID string) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.stores[sessionID]; ok {
		return s
	}
	s := NewStore(ctx, stashKey(sessionID), m.stash, m.logger)
	m.stores[sessionID] = s
	return s
}

func stashKey(sessionID string) string {
	return "cart:" + sessionID
}

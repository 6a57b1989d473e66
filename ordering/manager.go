package ordering

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

const DefaultSessionTTL = 2 * time.Hour

// Manager keeps the open sessions and evicts the ones left idle
type Manager struct {
	deps Deps
	ttl  time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager(deps Deps, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &Manager{
		deps:     deps.withDefaults(),
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

// Deps returns the collaborators sessions are built with
func (m *Manager) Deps() Deps { return m.deps }

func (m *Manager) Create() *Session {
	s := NewSession(uuid.NewString(), m.deps)
	m.mu.Lock()
	m.sessions[s.ID()] = s
	m.mu.Unlock()
	return s
}

func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many went
func (m *Manager) Sweep(now time.Time) int {
	cutoff := now.Add(-m.ttl)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.IdleSince().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(m.deps.Clock.Now()); n > 0 {
				m.deps.Log.WithField("evicted", n).Debug("idle sessions evicted")
			}
		}
	}
}

package cart

import (
	"strings"
	"sync"
	"time"

	"vtex-storefront/internal/adapters/vtex"
	"vtex-storefront/internal/logging"
	"vtex-storefront/internal/transform"
)

// Manager owns one Session per order form id.
type Manager struct {
	client vtex.CheckoutService
	opts   transform.Options
	logger logging.LoggerService

	mu       sync.Mutex
	closed   bool
	byID     map[string]*Session
	sessions map[*Session]struct{}
}

func NewManager(client vtex.CheckoutService, opts transform.Options, logger logging.LoggerService) *Manager {
	return &Manager{
		client:   client,
		opts:     opts,
		logger:   logger,
		byID:     make(map[string]*Session),
		sessions: make(map[*Session]struct{}),
	}
}

// Session returns the session of orderFormID, creating it on first use.
// Every lookup counts as use for Sweep. An empty id yields a new session that registers itself once VTEX assigns
// an order form.
func (m *Manager) Session(orderFormID string) (*Session, error) {
	id := strings.TrimSpace(orderFormID)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrQueueClosed
	}
	if id != "" {
		if s, ok := m.byID[id]; ok {
			s.touch()
			return s, nil
		}
	}

	s := newSession(id, m.client, m.opts, m.logger)
	s.onID = m.register
	m.sessions[s] = struct{}{}
	if id != "" {
		m.byID[id] = s
	}
	return s, nil
}

func (m *Manager) register(id string, s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if _, ok := m.byID[id]; !ok {
		m.byID[id] = s
	}
}

// Len is the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep closes sessions unused for maxIdle and returns how many it closed.
func (m *Manager) Sweep(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	m.mu.Lock()
	var idle []*Session
	for s := range m.sessions {
		if s.idleSince().Before(cutoff) {
			idle = append(idle, s)
			delete(m.sessions, s)
		}
	}
	for id, s := range m.byID {
		if _, ok := m.sessions[s]; !ok {
			delete(m.byID, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		s.close()
	}
	return len(idle)
}

// Close stops every session. Later calls to Session fail with
// ErrQueueClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	sessions := make([]*Session, 0, len(m.sessions))
	for s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[*Session]struct{})
	m.byID = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
}

package session

import "sync"

// Manager tracks at most one orchestrator per user. Orchestrators are
// single-owner and unsynchronized, so the manager carries the lock for the
// lookup table; operations on a fetched orchestrator are still expected to
// come from one caller at a time.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Orchestrator
	newLimit int
}

// NewManager creates a Manager. newLimit is passed to every orchestrator
// it creates; zero means the selector default.
func NewManager(newLimit int) *Manager {
	return &Manager{
		sessions: make(map[string]*Orchestrator),
		newLimit: newLimit,
	}
}

// Get returns the user's orchestrator, if one exists.
func (m *Manager) Get(userID string) (*Orchestrator, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.sessions[userID]
	return o, ok
}

// Create replaces any previous orchestrator for the user with a fresh one.
// The old session, if any, is simply discarded.
func (m *Manager) Create(userID string) *Orchestrator {
	m.mu.Lock()
	defer m.mu.Unlock()
	o := NewOrchestrator(m.newLimit)
	m.sessions[userID] = o
	return o
}

// Remove drops the user's orchestrator.
func (m *Manager) Remove(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

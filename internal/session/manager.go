package session

import "sync"

// Manager hands out editing sessions keyed by identity.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

func (m *Manager) Get(identity string) *Session {
	m.mu.RLock()
	sess, ok := m.sessions[identity]
	m.mu.RUnlock()
	if ok {
		return sess
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if sess, ok := m.sessions[identity]; ok {
		return sess
	}
	sess = newSession(identity)
	m.sessions[identity] = sess
	return sess
}

// Remove tears the session down, dropping its history and archive.
func (m *Manager) Remove(identity string) {
	m.mu.Lock()
	delete(m.sessions, identity)
	m.mu.Unlock()
}

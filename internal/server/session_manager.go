package server

import (
	"sync"

	"github.com/google/uuid"
)

// SessionIDManager tracks which account each transport session is bound
// to, so multiple users can share one HTTP-transport server instance.
type SessionIDManager struct {
	mu       sync.RWMutex
	sessions map[string]string // session id -> account
}

// NewSessionIDManager creates an empty session registry.
func NewSessionIDManager() *SessionIDManager {
	return &SessionIDManager{sessions: make(map[string]string)}
}

// Register creates a new session bound to the account and returns its id.
// Used by integrations that manage session ids themselves; transports that
// assign their own ids use Bind instead.
func (m *SessionIDManager) Register(account string) string {
	id := uuid.NewString()
	m.Bind(id, account)
	return id
}

// Bind associates a transport-assigned session id with an account.
func (m *SessionIDManager) Bind(sessionID, account string) {
	m.mu.Lock()
	m.sessions[sessionID] = account
	m.mu.Unlock()
}

// Account returns the account a session is bound to.
func (m *SessionIDManager) Account(sessionID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.sessions[sessionID]
	return account, ok
}

// Remove drops a session.
func (m *SessionIDManager) Remove(sessionID string) {
	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()
}

// Len returns the number of active sessions.
func (m *SessionIDManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

package application

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type session struct {
	userID    string
	expiresAt time.Time
}

// SessionManager issues opaque bearer tokens for the admin area.
type SessionManager struct {
	mu     sync.Mutex
	tokens map[string]session
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionManager(ttl time.Duration) *SessionManager {
	return &SessionManager{
		tokens: make(map[string]session),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (m *SessionManager) Issue(userID string) (string, time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	token := uuid.NewString()
	expires := m.now().Add(m.ttl)
	m.tokens[token] = session{userID: userID, expiresAt: expires}
	return token, expires
}

// Resolve returns the user behind token while it is still valid.
func (m *SessionManager) Resolve(token string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.tokens[token]
	if !ok {
		return "", false
	}
	if m.now().After(s.expiresAt) {
		delete(m.tokens, token)
		return "", false
	}
	return s.userID, true
}

func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
}

// Cleanup drops expired tokens.
func (m *SessionManager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for token, s := range m.tokens {
		if now.After(s.expiresAt) {
			delete(m.tokens, token)
		}
	}
}

func (m *SessionManager) Size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tokens)
}

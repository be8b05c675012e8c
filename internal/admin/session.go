// Package admin holds the password check and session tracking behind the
// admin endpoints.
package admin

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionTTL is how long a login stays valid without re-auth.
const DefaultSessionTTL = 7 * 24 * time.Hour

// SessionManager issues and validates opaque admin session tokens.
// Sessions are process-local; a restart logs every admin out, which is
// acceptable for a single-operator deployment.
type SessionManager struct {
	mu       sync.Mutex
	password string
	ttl      time.Duration
	sessions map[string]time.Time
	now      func() time.Time
}

// NewSessionManager creates a SessionManager. An empty password disables
// login entirely rather than allowing passwordless access.
func NewSessionManager(password string, ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionManager{
		password: password,
		ttl:      ttl,
		sessions: make(map[string]time.Time),
		now:      time.Now,
	}
}

// Login checks the password and, on success, returns a new session token
// and its expiry.
func (m *SessionManager) Login(password string) (string, time.Time, bool) {
	if m.password == "" {
		return "", time.Time{}, false
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(m.password)) != 1 {
		return "", time.Time{}, false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.pruneLocked()
	token := uuid.NewString()
	expiry := m.now().Add(m.ttl)
	m.sessions[token] = expiry
	return token, expiry, true
}

// Validate reports whether the token belongs to a live session.
func (m *SessionManager) Validate(token string) bool {
	if token == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, ok := m.sessions[token]
	if !ok {
		return false
	}
	if m.now().After(expiry) {
		delete(m.sessions, token)
		return false
	}
	return true
}

// Revoke ends the session. Revoking an unknown token is a no-op.
func (m *SessionManager) Revoke(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

// TTL returns the configured session lifetime.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

func (m *SessionManager) pruneLocked() {
	now := m.now()
	for token, expiry := range m.sessions {
		if now.After(expiry) {
			delete(m.sessions, token)
		}
	}
}

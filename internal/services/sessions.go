package services

import (
	"sync"

	"github.com/google/uuid"
)

// SessionManager hands out opaque tokens for logged-in users and resolves
// them back to an email. Tokens live only in server memory: a restart drops
// every session, and logout is purely a client-side token deletion.
type SessionManager struct {
	mu       sync.Mutex
	sessions map[string]string // token -> email
}

func NewSessionManager() *SessionManager {
	return &SessionManager{sessions: make(map[string]string)}
}

// Create issues a new session token for the given email.
func (m *SessionManager) Create(email string) string {
	token := uuid.NewString()
	m.mu.Lock()
	m.sessions[token] = email
	m.mu.Unlock()
	return token
}

// Lookup resolves a token to the email it was issued for.
func (m *SessionManager) Lookup(token string) (string, bool) {
	m.mu.Lock()
	email, ok := m.sessions[token]
	m.mu.Unlock()
	return email, ok
}

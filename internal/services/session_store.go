package services

import (
	"sync"

	"fintrack/internal/dto"
)

// SessionStore is an in-memory registry of issued sessions keyed by token.
// It exists so logout can revoke a session before its token expires; token
// signature and expiry checks stay in the token service.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]dto.SessionUser
}

// NewSessionStore creates an empty session store
func NewSessionStore() SessionStoreInterface {
	return &SessionStore{
		sessions: make(map[string]dto.SessionUser),
	}
}

// Put registers a session for the given token
func (ss *SessionStore) Put(token string, user dto.SessionUser) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.sessions[token] = user
}

// Get returns the session for a token, if one is registered
func (ss *SessionStore) Get(token string) (dto.SessionUser, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	user, ok := ss.sessions[token]
	return user, ok
}

// Delete revokes the session for a token. Deleting an unknown token is a
// no-op.
func (ss *SessionStore) Delete(token string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	delete(ss.sessions, token)
}

// Count returns the number of live sessions
func (ss *SessionStore) Count() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}

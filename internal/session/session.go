// Package session holds the client's view of who is signed in: the
// persisted bearer token, the fetched user profile, and the startup
// bootstrap that resolves one from the other.
package session

import (
	"sync"
)

// UserProfile is the backend's record of the signed-in user.
type UserProfile struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Session is the single mutable piece of state shared across flows.
// Writers are limited to the login flow, logout and the bootstrapper;
// everything else reads. The user field is only ever set from a
// successful backend response made with the current token, so a missing
// token implies a missing user.
type Session struct {
	mu      sync.RWMutex
	tokens  TokenStore
	user    *UserProfile
	loading bool
}

// NewSession creates an unresolved session. Loading stays true until
// the bootstrapper has resolved it one way or the other.
func NewSession(tokens TokenStore) *Session {
	return &Session{tokens: tokens, loading: true}
}

// Tokens exposes the token store backing this session.
func (s *Session) Tokens() TokenStore {
	return s.tokens
}

// User returns the current profile, if a backend call has established one.
func (s *Session) User() (UserProfile, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return UserProfile{}, false
	}
	return *s.user, true
}

// Authenticated reports whether a user profile is present.
func (s *Session) Authenticated() bool {
	_, ok := s.User()
	return ok
}

// Loading reports whether the session is still being resolved at startup.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// SetUser records the profile returned by a successful login.
func (s *Session) SetUser(user UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
	s.loading = false
}

// Clear drops the user and the persisted token. Used by logout; safe to
// call on an already-anonymous session.
func (s *Session) Clear() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return s.tokens.Clear()
}

// resolve finishes the bootstrap: records the fetched profile (nil for
// anonymous) and ends the loading state.
func (s *Session) resolve(user *UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.loading = false
}

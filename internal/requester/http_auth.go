package requester

import (
	"net/http"
)

// TokenSource yields the persisted bearer token, if one exists.
type TokenSource interface {
	Read() (token string, ok bool)
}

// AuthManager handles request authentication
type AuthManager interface {
	ApplyAuth(req *http.Request) error
}

// BearerTokenManager attaches the stored session token as a bearer
// credential. The token source is consulted immediately before
// dispatch, so a token stored by a login mid-session is picked up by
// the very next request. With no token present the request goes out
// unauthenticated; call sites never attach credentials themselves.
type BearerTokenManager struct {
	tokens TokenSource
}

var _ AuthManager = (*BearerTokenManager)(nil)

// NewBearerTokenManager creates a new BearerTokenManager
func NewBearerTokenManager(tokens TokenSource) *BearerTokenManager {
	return &BearerTokenManager{tokens: tokens}
}

// ApplyAuth adds the Authorization header when a token is stored.
func (m *BearerTokenManager) ApplyAuth(req *http.Request) error {
	token, ok := m.tokens.Read()
	if !ok || token == "" {
		return nil
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return nil
}

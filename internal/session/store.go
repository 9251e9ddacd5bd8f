package session

import "sync"

// tokenKey is the well-known key the bearer token lives under. It is
// the only durable artifact the client keeps.
const tokenKey = "jwt_token"

// TokenStore is the process-wide slot for the bearer token. At most one
// token is held at a time; Store overwrites, Clear is idempotent. The
// store tracks no expiry — only the backend can decide a token is stale.
type TokenStore interface {
	Store(token string) error
	Read() (string, bool)
	Clear() error
}

// MemoryTokenStore keeps the token in memory only. Used for ephemeral
// sessions and in tests.
type MemoryTokenStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

var _ TokenStore = (*MemoryTokenStore)(nil)

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Store(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.set = true
	return nil
}

func (m *MemoryTokenStore) Read() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set {
		return "", false
	}
	return m.token, true
}

func (m *MemoryTokenStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}

package tests

import (
	"net/http"
	"testing"

	"github.com/chatterm/chatterm/internal/requester"
	"github.com/chatterm/chatterm/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBearerTokenManager_ApplyAuth(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		stored    bool
		checkAuth func(t *testing.T, req *http.Request)
	}{
		{
			name:   "no token stored",
			stored: false,
			checkAuth: func(t *testing.T, req *http.Request) {
				assert.Empty(t, req.Header.Get("Authorization"))
			},
		},
		{
			name:   "token stored",
			token:  "test-token",
			stored: true,
			checkAuth: func(t *testing.T, req *http.Request) {
				assert.Equal(t, "Bearer test-token", req.Header.Get("Authorization"))
			},
		},
		{
			name:   "empty token treated as absent",
			token:  "",
			stored: true,
			checkAuth: func(t *testing.T, req *http.Request) {
				assert.Empty(t, req.Header.Get("Authorization"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewMemoryTokenStore()
			if tt.stored {
				require.NoError(t, store.Store(tt.token))
			}
			manager := requester.NewBearerTokenManager(store)

			req := &http.Request{Header: make(http.Header)}
			require.NoError(t, manager.ApplyAuth(req))
			tt.checkAuth(t, req)
		})
	}
}

func TestBearerTokenManager_ReadsStoreAtApplyTime(t *testing.T) {
	store := session.NewMemoryTokenStore()
	manager := requester.NewBearerTokenManager(store)

	before := &http.Request{Header: make(http.Header)}
	require.NoError(t, manager.ApplyAuth(before))
	assert.Empty(t, before.Header.Get("Authorization"))

	require.NoError(t, store.Store("late-login"))

	after := &http.Request{Header: make(http.Header)}
	require.NoError(t, manager.ApplyAuth(after))
	assert.Equal(t, "Bearer late-login", after.Header.Get("Authorization"))
}

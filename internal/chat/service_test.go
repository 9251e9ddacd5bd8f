package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chatterm/chatterm/internal/config"
	"github.com/chatterm/chatterm/internal/requester"
	"github.com/chatterm/chatterm/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*Service, *session.MemoryTokenStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := session.NewMemoryTokenStore()
	req := requester.NewHTTPRequester(requester.HTTPRequesterParams{
		Config:      &config.Config{Server: config.ServerConfig{BaseURL: server.URL}},
		AuthManager: requester.NewBearerTokenManager(store),
	})
	return NewService(req), store
}

func TestService_Send(t *testing.T) {
	svc, store := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "Bearer abc", r.Header.Get("Authorization"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["message"])

		_ = json.NewEncoder(w).Encode(map[string]string{"response": "hi there"})
	})
	require.NoError(t, store.Store("abc"))

	reply, err := svc.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
}

func TestService_Send_EmptyMessage(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected for an empty message")
	})

	_, err := svc.Send(context.Background(), "   ")
	require.Error(t, err)
}

func TestService_Send_RejectedStatus(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := svc.Send(context.Background(), "hello")
	require.Error(t, err)
}

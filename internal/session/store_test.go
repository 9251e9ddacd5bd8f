package session

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestBoltStore(t *testing.T) *BoltTokenStore {
	t.Helper()
	store, err := OpenBoltTokenStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestTokenStore(t *testing.T) {
	stores := map[string]func(t *testing.T) TokenStore{
		"memory": func(t *testing.T) TokenStore { return NewMemoryTokenStore() },
		"bolt":   func(t *testing.T) TokenStore { return openTestBoltStore(t) },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			t.Run("empty read is absent", func(t *testing.T) {
				store := open(t)
				_, ok := store.Read()
				assert.False(t, ok)
			})

			t.Run("store then read", func(t *testing.T) {
				store := open(t)
				require.NoError(t, store.Store("abc"))
				token, ok := store.Read()
				assert.True(t, ok)
				assert.Equal(t, "abc", token)
			})

			t.Run("last write wins", func(t *testing.T) {
				store := open(t)
				require.NoError(t, store.Store("t1"))
				require.NoError(t, store.Store("t2"))
				token, ok := store.Read()
				assert.True(t, ok)
				assert.Equal(t, "t2", token)
			})

			t.Run("clear is idempotent", func(t *testing.T) {
				store := open(t)
				require.NoError(t, store.Clear())
				require.NoError(t, store.Store("abc"))
				require.NoError(t, store.Clear())
				require.NoError(t, store.Clear())
				_, ok := store.Read()
				assert.False(t, ok)
			})
		})
	}
}

func TestBoltTokenStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	store, err := OpenBoltTokenStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Store("persisted"))
	require.NoError(t, store.Close())

	reopened, err := OpenBoltTokenStore(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	token, ok := reopened.Read()
	assert.True(t, ok)
	assert.Equal(t, "persisted", token)
}

func TestSession_ClearDropsUserAndToken(t *testing.T) {
	store := NewMemoryTokenStore()
	sess := NewSession(store)
	require.NoError(t, store.Store("abc"))
	sess.SetUser(UserProfile{Name: "x"})
	require.True(t, sess.Authenticated())

	require.NoError(t, sess.Clear())

	assert.False(t, sess.Authenticated())
	_, ok := store.Read()
	assert.False(t, ok)
}

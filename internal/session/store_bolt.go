package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/chatterm/chatterm/internal/logger"
	"go.etcd.io/bbolt"
	"go.uber.org/zap"
)

const tokenBucket = "session"

// BoltTokenStore persists the bearer token in a BBolt database so the
// session survives restarts of the client.
type BoltTokenStore struct {
	db *bbolt.DB
}

var _ TokenStore = (*BoltTokenStore)(nil)

// OpenBoltTokenStore opens (creating if needed) the token database at
// the given path. The file is created with 0600: it holds a live
// credential.
func OpenBoltTokenStore(path string) (*BoltTokenStore, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("creating token db directory: %w", err)
		}
	}
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening token db: %w", err)
	}
	return &BoltTokenStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltTokenStore) Close() error {
	return s.db.Close()
}

func (s *BoltTokenStore) Store(token string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists([]byte(tokenBucket))
		if err != nil {
			return err
		}
		return b.Put([]byte(tokenKey), []byte(token))
	})
}

func (s *BoltTokenStore) Read() (string, bool) {
	var token string
	var found bool
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(tokenBucket))
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(tokenKey)); v != nil {
			token = string(v)
			found = true
		}
		return nil
	})
	if err != nil {
		logger.Warn("token read failed", zap.Error(err))
		return "", false
	}
	return token, found
}

func (s *BoltTokenStore) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(tokenBucket))
		if b == nil {
			return nil
		}
		return b.Delete([]byte(tokenKey))
	})
}

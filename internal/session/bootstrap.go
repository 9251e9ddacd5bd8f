package session

import (
	"context"
	"sync"

	"github.com/chatterm/chatterm/internal/logger"
	"go.uber.org/zap"
)

// BootstrapState tracks the startup session resolution.
type BootstrapState int

const (
	// Resolving means the who-am-I query has not completed yet.
	Resolving BootstrapState = iota
	// Resolved is terminal: the session is either authenticated or anonymous.
	Resolved
)

// ProfileFetcher is the single backend call the bootstrapper needs: an
// authenticated "current user" query.
type ProfileFetcher interface {
	CurrentUser(ctx context.Context) (UserProfile, error)
}

// Bootstrapper resolves the initial session state exactly once per
// process. Any failure — missing token, expired token, network error —
// resolves to anonymous; an absent session is a steady state, not an
// error, so nothing is surfaced to the user.
type Bootstrapper struct {
	session *Session
	fetch   ProfileFetcher

	mu    sync.Mutex
	once  sync.Once
	state BootstrapState
}

// NewBootstrapper creates a bootstrapper for the given session.
func NewBootstrapper(session *Session, fetch ProfileFetcher) *Bootstrapper {
	return &Bootstrapper{session: session, fetch: fetch}
}

// State returns the current bootstrap state.
func (b *Bootstrapper) State() BootstrapState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Run issues the one-shot who-am-I query and resolves the session.
// Subsequent calls are no-ops; there is no polling or retry.
func (b *Bootstrapper) Run(ctx context.Context) {
	b.once.Do(func() {
		user, err := b.fetch.CurrentUser(ctx)
		b.mu.Lock()
		b.state = Resolved
		b.mu.Unlock()
		if err != nil {
			logger.Debug("session bootstrap resolved anonymous", zap.Error(err))
			b.session.resolve(nil)
			return
		}
		logger.Info("session bootstrap resolved", zap.String("user", user.Name))
		b.session.resolve(&user)
	})
}

package session

import (
	"github.com/chatterm/chatterm/internal/config"
	"go.uber.org/fx"
)

// Module provides the session dependencies
var Module = fx.Options(
	fx.Provide(
		NewTokenStore,
		NewSession,
		NewBootstrapper,
	),
)

// NewTokenStore selects the persistent or ephemeral store from config.
// The persistent store is closed on application stop.
func NewTokenStore(lc fx.Lifecycle, cfg *config.Config) (TokenStore, error) {
	if cfg.Storage.Ephemeral {
		return NewMemoryTokenStore(), nil
	}
	path, err := cfg.Storage.TokenDBPath()
	if err != nil {
		return nil, err
	}
	store, err := OpenBoltTokenStore(path)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(store.Close))
	return store, nil
}

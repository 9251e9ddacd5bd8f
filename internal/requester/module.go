package requester

import (
	"github.com/chatterm/chatterm/internal/session"
	"go.uber.org/fx"
)

// Module provides the requester module dependencies
var Module = fx.Options(
	fx.Provide(
		NewHTTPRequester,
		fx.Annotate(
			NewBearerTokenManager,
			fx.As(new(AuthManager)),
		),
		func(store session.TokenStore) TokenSource { return store },
	),
)

package auth

import (
	"github.com/chatterm/chatterm/internal/credential"
	"github.com/chatterm/chatterm/internal/session"
	"go.uber.org/fx"
)

// Module provides the auth flow dependencies
var Module = fx.Options(
	fx.Provide(
		NewFlows,
		fx.Annotate(
			credential.NewSHA256Hasher,
			fx.As(new(credential.Hasher)),
		),
		func(f *Flows) session.ProfileFetcher { return f },
	),
)

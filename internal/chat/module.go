package chat

import (
	"go.uber.org/fx"
)

// Module provides the chat service dependencies
var Module = fx.Options(
	fx.Provide(
		NewService,
	),
)

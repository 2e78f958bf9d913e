package components

import (
	"ghar-ko-sathi/internal/handler/ws"
	"ghar-ko-sathi/internal/realtime/dispatch"
	"ghar-ko-sathi/internal/realtime/presence"
	"ghar-ko-sathi/internal/usecase/commands"

	"go.uber.org/fx"
)

var RealtimeModule = fx.Module("realtime",
	fx.Provide(
		presence.NewRegistry,
		fx.Annotate(
			dispatch.NewDispatcher,
			fx.As(new(commands.Notifier)),
			fx.As(new(presence.Sender)),
		),
		fx.Annotate(
			presence.NewBroadcaster,
			fx.As(new(ws.LocationBroadcaster)),
		),
	),
)

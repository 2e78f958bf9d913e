package components

import (
	"ghar-ko-sathi/internal/handler"
	"ghar-ko-sathi/internal/handler/api"
	"ghar-ko-sathi/internal/handler/middleware"
	"ghar-ko-sathi/internal/handler/ws"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		ws.NewHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

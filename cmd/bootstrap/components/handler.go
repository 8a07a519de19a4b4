package components

import (
	"wheelshare/internal/handler"
	"wheelshare/internal/handler/api"
	"wheelshare/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewPaymentHandler,
		api.NewCarHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

package components

import (
	"driveshare/internal/handler"
	"driveshare/internal/handler/api"
	"driveshare/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewVehicleHandler,
		api.NewBookingHandler,
		api.NewAvailabilityHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

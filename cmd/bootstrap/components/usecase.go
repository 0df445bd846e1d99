package components

import (
	"driveshare/internal/domain/booking"
	"driveshare/internal/pkg/clock"
	"driveshare/internal/usecase/commands"
	"driveshare/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		booking.NewDailyRateCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
	booking.NewFactory,
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewVehicleQueries,
		queries.NewBookingQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewVehicleCommands,
		commands.NewBookingCommands,
		// AuthCommands carries token validation; middleware only needs that slice.
		func(a commands.AuthCommands) commands.TokenValidator { return a },
	),
)

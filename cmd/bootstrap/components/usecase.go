package components

import (
	"wheelshare/internal/domain/booking"
	"wheelshare/internal/pkg/clock"
	"wheelshare/internal/usecase/commands"
	"wheelshare/internal/usecase/queries"

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
		queries.NewBookingQueries,
		queries.NewCarQueries,
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
		commands.NewPaymentCommands,
		commands.NewCarCommands,
	),
)

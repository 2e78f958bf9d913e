package components

import (
	"ghar-ko-sathi/internal/domain/booking"
	"ghar-ko-sathi/internal/pkg/clock"
	"ghar-ko-sathi/internal/pkg/config"
	"ghar-ko-sathi/internal/usecase"
	"ghar-ko-sathi/internal/usecase/commands"
	"ghar-ko-sathi/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		NewPriceCalculator,
		fx.As(new(booking.PriceCalculator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewPriceCalculator(cfg config.Config) (*booking.DefaultPriceCalculator, error) {
	rate, err := booking.MoneyFromRupees(cfg.Booking.HourlyRate)
	if err != nil {
		return nil, err
	}
	return booking.NewDefaultPriceCalculator(rate), nil
}

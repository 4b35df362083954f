package components

import (
	"time"

	"court-reservation/internal/pkg/clock"
	"court-reservation/internal/pkg/config"
	"court-reservation/internal/usecase"
	"court-reservation/internal/usecase/commands"
	"court-reservation/internal/usecase/queries"

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
	NewPolicy,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewLockManager,
		commands.NewReservationCommands,
		commands.NewResourceCommands,
		commands.NewEventRelay,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
		queries.NewAvailabilityQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewPolicy(cfg config.Config, loc *time.Location) commands.Policy {
	return commands.Policy{
		HoldTTL:         cfg.Schedule.HoldTTL,
		PaymentCooldown: cfg.Schedule.PaymentCooldown,
		Location:        loc,
	}
}

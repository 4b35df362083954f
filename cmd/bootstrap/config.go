package bootstrap

import (
	"time"

	"court-reservation/internal/pkg/config"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewScheduleLocation,
	),
)

// NewScheduleLocation is the single timezone calendar days are taken in.
func NewScheduleLocation(cfg config.Config) (*time.Location, error) {
	return cfg.Schedule.Location()
}

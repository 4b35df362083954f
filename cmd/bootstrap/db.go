package bootstrap

import (
	"context"
	"log/slog"

	"court-reservation/internal/infra/db"
	"court-reservation/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
	),
)

// NewDB opens the pool and refuses to start against an unmigrated schema:
// without the overlap constraint double bookings go undetected.
func NewDB(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	pool, closePool, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := db.CheckSchema(ctx, pool); err != nil {
				logger.Error("database schema check failed", "database", cfg.DB.DBName, "error", err)
				return err
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			closePool()
			return nil
		},
	})

	return pool, nil
}

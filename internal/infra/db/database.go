package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"court-reservation/internal/pkg/config"
	"court-reservation/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgxpool"
)

const connectTimeout = 10 * time.Second

func Connect(cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	poolCfg.MaxConnLifetime = time.Hour
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	cleanup := func() {
		pool.Close()
		slog.Info("database pool closed", "database", cfg.DBName)
	}

	return pool, cleanup, nil
}

// ErrSchemaNotMigrated means the overlap guard the lock manager relies on
// is missing; run cmd/migrate first.
var ErrSchemaNotMigrated = errs.New("reservation schema is not migrated")

// CheckSchema verifies that the reservations exclusion constraint exists.
func CheckSchema(ctx context.Context, pool *pgxpool.Pool) error {
	var present bool
	err := pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM pg_constraint
			WHERE conname = 'reservations_no_overlap' AND contype = 'x'
		)`).Scan(&present)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if !present {
		return ErrSchemaNotMigrated
	}
	return nil
}

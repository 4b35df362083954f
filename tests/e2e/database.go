//go:build e2e

package e2e

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"court-reservation/internal/infra/db"
	"court-reservation/internal/pkg/config"
	"court-reservation/internal/pkg/errs"
	"court-reservation/tests/common/dbtest"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
)

const createDatabaseAttempts = 5

// prepareDatabase creates a private database on the shared container,
// migrates and seeds it, and drops it when the test binary finishes.
func prepareDatabase(t *testing.T, endpoint pgEndpoint) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()

	dbName := "court_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	adminDSN := endpoint.dsn("postgres")

	require.NoError(t, createDatabase(adminDSN, dbName), "テスト用データベースの作成に失敗")
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		admin, err := pgxpool.New(ctx, adminDSN)
		if err != nil {
			slog.Warn("クリーンアップ用の接続に失敗しました", "database", dbName, "error", err.Error())
			return
		}
		defer admin.Close()
		if _, err := admin.Exec(ctx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("テストデータベースの削除に失敗しました", "database", dbName, "error", err.Error())
		}
	})

	dbConfig := config.DBConfig{
		Host:     endpoint.Host,
		Port:     endpoint.Port,
		User:     pgUser,
		Password: pgPassword,
		DBName:   dbName,
		SSLMode:  "disable",
		TimeZone: "Asia/Tokyo",
	}

	pool, _, err := db.Connect(dbConfig)
	require.NoError(t, err, "データベース接続に失敗")

	require.NoError(t, applyMigrations(pool), "マイグレーションに失敗")
	require.NoError(t, db.CheckSchema(context.Background(), pool), "スキーマ検証に失敗")
	require.NoError(t, dbtest.SeedReferenceData(pool), "参照データの投入に失敗")

	return pool, dbConfig
}

// createDatabase retries because a freshly started container can refuse
// connections for a moment after the readiness probe passes.
func createDatabase(adminDSN, dbName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var err error
	for attempt := range createDatabaseAttempts {
		if attempt > 0 {
			slog.Warn("データベース作成を再試行中", "attempt", attempt+1, "error", err.Error())
			time.Sleep(time.Duration(attempt) * 500 * time.Millisecond)
		}

		var admin *pgxpool.Pool
		admin, err = pgxpool.New(ctx, adminDSN)
		if err != nil {
			continue
		}
		_, err = admin.Exec(ctx, "CREATE DATABASE "+dbName)
		admin.Close()
		if err == nil {
			return nil
		}
	}
	return errs.Wrapf(err, "create database %s", dbName)
}

// applyMigrations runs every migrations/*.sql in name order, the same set
// atlas applies in deployed environments.
func applyMigrations(pool *pgxpool.Pool) error {
	dir, err := migrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return errs.Wrap(err, "list migrations")
	}
	slices.Sort(files)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, file := range files {
		sql, err := os.ReadFile(file)
		if err != nil {
			return errs.Wrapf(err, "read migration %s", file)
		}
		if _, err := pool.Exec(ctx, string(sql)); err != nil {
			return errs.Wrapf(err, "apply migration %s", filepath.Base(file))
		}
	}
	return nil
}

// migrationsDir walks up from the package directory go test runs in.
func migrationsDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", errs.Wrap(err, "working directory")
	}
	for {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errs.New("migrations directory not found")
		}
		dir = parent
	}
}

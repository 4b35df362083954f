//go:build e2e

package e2e

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"court-reservation/cmd/bootstrap"
	"court-reservation/cmd/bootstrap/components"
	"court-reservation/internal/pkg/config"
	"court-reservation/internal/pkg/errs"
	"court-reservation/internal/usecase/commands"
	"court-reservation/internal/usecase/shared"
	"court-reservation/tests/common/dbtest"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

// ------------------------------------------------------------
// 各テストプロセス用にセットアップ
// ------------------------------------------------------------
func setupE2EEnvironment(t *testing.T) (*pgxpool.Pool, e2eApp) {
	gin.SetMode(gin.TestMode)

	endpoint := postgresEndpoint(t)
	pool, dbConfig := prepareDatabase(t, endpoint)

	built, app, err := buildE2EApp(pool, dbConfig)
	require.NoError(t, err, "fxアプリケーションの起動に失敗")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("fxアプリケーションの停止に失敗しました", "error", err.Error())
		}
		pool.Close()
	})

	return pool, built
}

// ------------------------------------------------------------
// E2Eテスト用アプリケーション構築関数
// Kafka is swapped for an in-memory publisher; everything else is the
// production wiring against the test database.
// ------------------------------------------------------------
type e2eApp struct {
	Router    *gin.Engine
	Config    config.Config
	Locks     commands.LockManager
	Relay     commands.EventRelay
	Published *RecordingPublisher
}

func buildE2EApp(pool *pgxpool.Pool, dbConfig config.DBConfig) (e2eApp, *fx.App, error) {
	var built e2eApp
	published := &RecordingPublisher{}

	testDBModule := fx.Module("testdb",
		fx.Provide(func() *pgxpool.Pool { return pool }),
	)

	testConfigModule := fx.Module("testconfig",
		fx.Provide(
			func() config.Config {
				return createTestConfig(dbConfig)
			},
			bootstrap.NewScheduleLocation,
		),
	)

	app := fx.New(
		testDBModule,
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		components.PersistenceModule,
		components.InfraModule,
		components.UseCaseModule,
		components.HandlerModule,
		fx.Decorate(func(shared.EventPublisher) shared.EventPublisher { return published }),

		fx.Populate(&built.Router, &built.Config, &built.Locks, &built.Relay),

		// ログを無効にして起動
		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		return e2eApp{}, nil, errs.Wrap(err, "start fx app")
	}

	built.Published = published
	return built, app, nil
}

func createTestConfig(dbConfig config.DBConfig) config.Config {
	testConfig := config.NewTestConfig()
	testConfig.DB = dbConfig
	return testConfig
}

// ------------------------------------------------------------
// 発行イベントの記録
// ------------------------------------------------------------
type RecordingPublisher struct {
	mu     sync.Mutex
	events []shared.Event
}

func (p *RecordingPublisher) Publish(_ context.Context, evts []shared.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evts...)
	return nil
}

func (p *RecordingPublisher) Events() []shared.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]shared.Event(nil), p.events...)
}

func (p *RecordingPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

// ------------------------------------------------------------
// E2Eテストスイートで共通のセットアップ
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router    *gin.Engine
	DB        *pgxpool.Pool // 各テストで使う DB 接続
	Config    config.Config
	Locks     commands.LockManager
	Relay     commands.EventRelay
	Published *RecordingPublisher
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	db, app := setupE2EEnvironment(t)
	s.DB = db
	s.Router = app.Router
	s.Config = app.Config
	s.Locks = app.Locks
	s.Relay = app.Relay
	s.Published = app.Published
	require.NotNil(t, db, "DBのセットアップに失敗")
	require.NotEmpty(t, s.Config, "Configの取得に失敗")
	require.NotNil(t, s.Router, "Routerのセットアップに失敗")
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

func (s *SharedSuite) SetupTest() {
	s.resetState()
}

func (s *SharedSuite) SetupSubTest() {
	s.resetState()
}

// resetState truncates every table, reseeds the courts and forgets
// published events.
func (s *SharedSuite) resetState() {
	err := dbtest.ResetDB(s.DB)
	require.NoError(s.T(), err, "Failed to reset database state")
	s.Published.Reset()
}

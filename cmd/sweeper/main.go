package main

import (
	"context"
	"log/slog"
	"os"
	"time"
	_ "time/tzdata" // schedule timezone on minimal images

	"court-reservation/cmd/bootstrap"
	"court-reservation/internal/pkg/config"
	"court-reservation/internal/usecase/commands"

	"go.uber.org/fx"
)

// sweeper releases lapsed holds and relays outbox events to Kafka on fixed
// intervals. Running several replicas is safe.
type sweeper struct {
	locks  commands.LockManager
	relay  commands.EventRelay
	cfg    config.SweeperConfig
	logger *slog.Logger
}

func (s *sweeper) run(ctx context.Context) {
	sweepTicker := time.NewTicker(s.cfg.Interval)
	defer sweepTicker.Stop()
	relayTicker := time.NewTicker(s.cfg.RelayInterval)
	defer relayTicker.Stop()

	s.sweep(ctx)
	s.relayAll(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-sweepTicker.C:
			s.sweep(ctx)
		case <-relayTicker.C:
			s.relayAll(ctx)
		}
	}
}

func (s *sweeper) sweep(ctx context.Context) {
	released, err := s.locks.ReleaseExpired(ctx)
	if err != nil {
		s.logger.Error("期限切れの仮押さえの解放に失敗しました", "error", err)
		return
	}
	if released > 0 {
		s.logger.Info("期限切れの仮押さえを解放しました", "released", released)
	}
}

// relayAll drains the outbox one batch at a time until a batch comes back short.
func (s *sweeper) relayAll(ctx context.Context) {
	for ctx.Err() == nil {
		delivered, err := s.relay.RelayEvents(ctx, s.batchSize())
		if err != nil {
			s.logger.Error("イベントの配信に失敗しました", "error", err)
			return
		}
		if delivered < s.batchSize() {
			return
		}
	}
}

func startSweeper(lc fx.Lifecycle, locks commands.LockManager, relay commands.EventRelay, cfg config.Config, logger *slog.Logger) {
	s := &sweeper{locks: locks, relay: relay, cfg: cfg.Sweeper, logger: logger}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("🧹 スイーパーを起動します",
				"sweep_interval", cfg.Sweeper.Interval,
				"relay_interval", cfg.Sweeper.RelayInterval)
			go func() {
				defer close(done)
				s.run(ctx)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			logger.Info("🛑 スイーパーを停止します")
			cancel()
			select {
			case <-done:
				return nil
			case <-stopCtx.Done():
				return stopCtx.Err()
			}
		},
	})
}

func main() {
	app := fx.New(
		bootstrap.CoreModule,
		fx.Invoke(startSweeper),
	)

	if err := app.Start(context.Background()); err != nil {
		slog.Error("スイーパーの起動に失敗しました", "error", err)
		os.Exit(1)
	}

	<-app.Done()

	if err := app.Stop(context.Background()); err != nil {
		slog.Error("スイーパーの停止に失敗しました", "error", err)
	}
}

func (s *sweeper) batchSize() int {
	return max(s.cfg.RelayBatchSize, 1)
}

package components

import (
	"context"
	"log/slog"

	"court-reservation/internal/infra/events"
	"court-reservation/internal/infra/payment"
	"court-reservation/internal/pkg/config"
	"court-reservation/internal/usecase/shared"

	"go.uber.org/fx"
)

var InfraModule = fx.Module("infra",
	fx.Provide(
		fx.Annotate(
			NewPaymentGateway,
			fx.As(new(shared.PaymentGateway)),
		),
		fx.Annotate(
			NewEventPublisher,
			fx.As(new(shared.EventPublisher)),
		),
	),
)

func NewPaymentGateway(cfg config.Config, logger *slog.Logger) *payment.DummyGateway {
	return payment.NewDummyGateway(cfg.Payment.Latency, logger)
}

// NewEventPublisher flushes pending Kafka batches on shutdown.
func NewEventPublisher(lc fx.Lifecycle, cfg config.Config, logger *slog.Logger) *events.KafkaPublisher {
	publisher := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.Kafka), logger)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})
	return publisher
}

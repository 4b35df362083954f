package commands

import (
	"context"
	"log/slog"

	"court-reservation/internal/pkg/clock"
	"court-reservation/internal/usecase/shared"
)

//go:generate mockgen -source=relay.go -destination=../../../tests/mock/commands/relay_mock.go -package=commandsmock

type EventRelay interface {
	// RelayEvents publishes up to batchSize unpublished outbox rows and
	// returns how many were delivered.
	RelayEvents(ctx context.Context, batchSize int) (int, error)
}

type eventRelayImpl struct {
	uow       shared.UnitOfWork
	publisher shared.EventPublisher
	clock     clock.Clock
	logger    *slog.Logger
}

func NewEventRelay(uow shared.UnitOfWork, publisher shared.EventPublisher, clk clock.Clock, logger *slog.Logger) EventRelay {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventRelayImpl{uow: uow, publisher: publisher, clock: clk, logger: logger}
}

// Rows stay locked (SKIP LOCKED) while publishing so parallel relays pick
// disjoint batches. Delivery is at-least-once: a failed publish or mark
// leaves the rows for the next run.
func (r *eventRelayImpl) RelayEvents(ctx context.Context, batchSize int) (int, error) {
	var delivered int
	err := r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		delivered = 0

		events, err := tx.Events().LockUnpublished(ctx, batchSize)
		if err != nil {
			return dbFailure(err)
		}
		if len(events) == 0 {
			return nil
		}

		if err := r.publisher.Publish(ctx, events); err != nil {
			return err
		}

		ids := make([]int64, len(events))
		for i, e := range events {
			ids[i] = e.ID
		}
		if err := tx.Events().MarkPublished(ctx, ids, r.clock.Now()); err != nil {
			return dbFailure(err)
		}
		delivered = len(events)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if delivered > 0 {
		r.logger.Debug("relayed reservation events", "count", delivered)
	}
	return delivered, nil
}

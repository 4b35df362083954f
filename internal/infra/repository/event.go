package repository

import (
	"context"
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/infra"
	sqlc "court-reservation/internal/infra/sqlc/generated"
	"court-reservation/internal/pkg/pgconv"
	"court-reservation/internal/usecase/shared"
)

type EventWriteQueries interface {
	CreateReservationEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationEventParams) error
	LockUnpublishedReservationEvents(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.ReservationEvents, error)
	MarkReservationEventsPublished(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkReservationEventsPublishedParams) (int64, error)
}

// EventRepository is the reservation outbox. Rows are written in the same
// transaction as the state change they describe.
type EventRepository struct {
	queries EventWriteQueries
	db      sqlc.DBTX
}

func NewEventRepository(queries EventWriteQueries, db sqlc.DBTX) *EventRepository {
	return &EventRepository{
		queries: queries,
		db:      db,
	}
}

func (r *EventRepository) Append(ctx context.Context, event shared.Event) error {
	params := sqlc.CreateReservationEventParams{
		ReservationID: event.ReservationID,
		Kind:          event.Kind.String(),
		Payload:       event.Payload,
		CreatedAt:     pgconv.TimeToPgtype(event.CreatedAt),
	}

	if err := r.queries.CreateReservationEvent(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to append reservation event", err)
	}
	return nil
}

func (r *EventRepository) LockUnpublished(ctx context.Context, limit int) ([]shared.Event, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := r.queries.LockUnpublishedReservationEvents(ctx, r.db, int32(min(limit, 10_000))) // #nosec G115 -- clamped
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock unpublished events", err)
	}

	events := make([]shared.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, shared.Event{
			ID:            row.ID,
			ReservationID: row.ReservationID,
			Kind:          reservation.EventKind(row.Kind),
			Payload:       row.Payload,
			CreatedAt:     row.CreatedAt.Time,
		})
	}
	return events, nil
}

func (r *EventRepository) MarkPublished(ctx context.Context, ids []int64, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	params := sqlc.MarkReservationEventsPublishedParams{
		PublishedAt: pgconv.TimeToPgtype(at),
		Ids:         ids,
	}
	if _, err := r.queries.MarkReservationEventsPublished(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to mark events published", err)
	}
	return nil
}

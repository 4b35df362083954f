package commands

import (
	"context"
	"encoding/json"
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/pkg/errs"
	"court-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type eventPayload struct {
	Kind             string    `json:"kind"`
	ReservationID    uuid.UUID `json:"reservation_id"`
	ResourceID       uuid.UUID `json:"resource_id"`
	HolderID         uuid.UUID `json:"holder_id"`
	StartAt          time.Time `json:"start_at"`
	EndAt            time.Time `json:"end_at"`
	DurationUnits    int       `json:"duration_units"`
	TotalPrice       string    `json:"total_price"`
	Status           string    `json:"status"`
	PaymentReference *string   `json:"payment_reference,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

func newEvent(kind reservation.EventKind, r *reservation.Reservation, at time.Time) (shared.Event, error) {
	payload, err := json.Marshal(eventPayload{
		Kind:             kind.String(),
		ReservationID:    r.ID(),
		ResourceID:       r.ResourceID(),
		HolderID:         r.HolderID(),
		StartAt:          r.StartAt(),
		EndAt:            r.EndAt(),
		DurationUnits:    r.DurationUnits(),
		TotalPrice:       r.TotalPrice().String(),
		Status:           r.Status().String(),
		PaymentReference: r.PaymentReference(),
		OccurredAt:       at,
	})
	if err != nil {
		return shared.Event{}, errs.Wrap(err, "marshal reservation event")
	}
	return shared.Event{
		ReservationID: r.ID(),
		Kind:          kind,
		Payload:       payload,
		CreatedAt:     at,
	}, nil
}

// recordEvent writes the outbox row inside the caller's transaction.
func recordEvent(ctx context.Context, tx shared.Tx, kind reservation.EventKind, r *reservation.Reservation, at time.Time) error {
	event, err := newEvent(kind, r, at)
	if err != nil {
		return err
	}
	if err := tx.Events().Append(ctx, event); err != nil {
		return dbFailure(err)
	}
	return nil
}

// saveTransition persists a state change together with its event.
func saveTransition(ctx context.Context, tx shared.Tx, kind reservation.EventKind, r *reservation.Reservation, at time.Time) error {
	if err := tx.Reservations().Save(ctx, r); err != nil {
		return dbFailure(err)
	}
	return recordEvent(ctx, tx, kind, r, at)
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/domain/slot"
	"court-reservation/internal/infra"
	"court-reservation/internal/pkg/clock"
	"court-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/commands/reservation_mock.go -package=commandsmock

type HoldReservationInput struct {
	ResourceID    uuid.UUID
	HolderID      uuid.UUID
	StartAt       time.Time
	DurationUnits int
}

type ConfirmReservationInput struct {
	ReservationID uuid.UUID
	HolderID      uuid.UUID
	Payment       shared.PaymentDetails
}

type ReservationCommands interface {
	HoldReservation(ctx context.Context, in HoldReservationInput) (*reservation.Reservation, error)
	ConfirmReservation(ctx context.Context, in ConfirmReservationInput) (*reservation.Reservation, error)
	CancelReservation(ctx context.Context, reservationID uuid.UUID, actor shared.Actor) (*reservation.Reservation, error)
}

type reservationCommandsImpl struct {
	uow     shared.UnitOfWork
	locks   LockManager
	gateway shared.PaymentGateway
	clock   clock.Clock
	policy  Policy
	logger  *slog.Logger
}

func NewReservationCommands(
	uow shared.UnitOfWork,
	locks LockManager,
	gateway shared.PaymentGateway,
	clk clock.Clock,
	policy Policy,
	logger *slog.Logger,
) ReservationCommands {
	if logger == nil {
		logger = slog.Default()
	}
	return &reservationCommandsImpl{
		uow:     uow,
		locks:   locks,
		gateway: gateway,
		clock:   clk,
		policy:  policy.withDefaults(),
		logger:  logger,
	}
}

// HoldReservation validates a booking request against the resource and
// hands it to the lock manager priced at the resource's hourly rate.
func (c *reservationCommandsImpl) HoldReservation(ctx context.Context, in HoldReservationInput) (*reservation.Reservation, error) {
	start := in.StartAt.In(c.policy.Location)

	if err := reservation.ValidateDuration(in.DurationUnits); err != nil {
		return nil, validation(err)
	}
	if !slot.IsAligned(start) {
		return nil, validation(reservation.ErrStartNotAligned)
	}
	if !start.After(c.clock.Now()) {
		return nil, validation(reservation.ErrStartInPast)
	}

	res, err := c.uow.CommandReads().ResourceByID(ctx, in.ResourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, dbFailure(err)
	}
	if err := res.EnsureBookable(start, in.DurationUnits); err != nil {
		return nil, validation(err)
	}

	unitPrice, err := reservation.NewMoney(res.HourlyPrice())
	if err != nil {
		return nil, validation(err)
	}

	return c.locks.Acquire(ctx, AcquireParams{
		ResourceID:    res.ID(),
		HolderID:      in.HolderID,
		StartAt:       start,
		DurationUnits: in.DurationUnits,
		UnitPrice:     unitPrice,
	})
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/infra"
	"court-reservation/internal/pkg/clock"
	"court-reservation/internal/pkg/ptr"
	"court-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=lock.go -destination=../../../tests/mock/commands/lock_mock.go -package=commandsmock

type AcquireParams struct {
	ResourceID    uuid.UUID
	HolderID      uuid.UUID
	StartAt       time.Time
	DurationUnits int
	UnitPrice     reservation.Money
}

// LockManager owns the only write paths that create or sweep holds.
type LockManager interface {
	// Acquire places a hold on [StartAt, StartAt+DurationUnits h) or fails
	// with ErrSlotConflict. Concurrent acquirers of one resource queue on the
	// resource row, so at most one of any overlapping set wins.
	Acquire(ctx context.Context, p AcquireParams) (*reservation.Reservation, error)
	// ReleaseExpired cancels every lapsed hold and returns how many it cancelled.
	ReleaseExpired(ctx context.Context) (int, error)
}

type lockManagerImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	policy Policy
	logger *slog.Logger
}

func NewLockManager(uow shared.UnitOfWork, clk clock.Clock, policy Policy, logger *slog.Logger) LockManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &lockManagerImpl{
		uow:    uow,
		clock:  clk,
		policy: policy.withDefaults(),
		logger: logger,
	}
}

func (m *lockManagerImpl) Acquire(ctx context.Context, p AcquireParams) (*reservation.Reservation, error) {
	start := p.StartAt.In(m.policy.Location)

	var held *reservation.Reservation
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		held = nil

		res, err := tx.Resources().LockByID(ctx, p.ResourceID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrResourceNotFound
			}
			return dbFailure(err)
		}
		if err := res.EnsureBookable(start, p.DurationUnits); err != nil {
			return validation(err)
		}

		now := m.clock.Now()
		hold, err := reservation.NewHold(p.ResourceID, p.HolderID, start, p.DurationUnits, p.UnitPrice, now, m.policy.HoldTTL)
		if err != nil {
			return validation(err)
		}

		overlapping, err := tx.Reservations().LockOverlapping(ctx, p.ResourceID, hold.StartAt(), hold.EndAt())
		if err != nil {
			return dbFailure(err)
		}
		for _, other := range overlapping {
			// a lapsed hold the sweep has not reached yet gives way
			if !other.Release(now) {
				return ErrSlotConflict
			}
			if err := saveTransition(ctx, tx, reservation.EventCancelled, other, now); err != nil {
				return err
			}
		}

		if err := tx.Reservations().Create(ctx, hold); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) || infra.IsKind(err, infra.KindConflict) {
				return ErrSlotConflict
			}
			return dbFailure(err)
		}
		if err := recordEvent(ctx, tx, reservation.EventHeld, hold, now); err != nil {
			return err
		}

		held = hold
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("reservation held",
		"reservation_id", held.ID(),
		"resource_id", held.ResourceID(),
		"holder_id", held.HolderID(),
		"start_at", held.StartAt(),
		"duration_units", held.DurationUnits(),
		"hold_expires_at", ptr.Deref(held.HoldExpiresAt()))
	return held, nil
}

func (m *lockManagerImpl) ReleaseExpired(ctx context.Context) (int, error) {
	var released []*reservation.Reservation
	err := m.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		released = nil

		now := m.clock.Now()
		rows, err := tx.Reservations().CancelReleasable(ctx, now)
		if err != nil {
			return dbFailure(err)
		}
		for _, r := range rows {
			if err := recordEvent(ctx, tx, reservation.EventCancelled, r, now); err != nil {
				return err
			}
		}
		released = rows
		return nil
	})
	if err != nil {
		return 0, err
	}

	if len(released) > 0 {
		m.logger.Info("released lapsed holds", "count", len(released))
	}
	return len(released), nil
}

package commands

import (
	"context"
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/infra"
	"court-reservation/internal/pkg/errs"
	"court-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

// ConfirmReservation charges the holder and confirms the hold. The charge
// runs between two transactions so no row lock is held while the gateway
// is working.
func (c *reservationCommandsImpl) ConfirmReservation(ctx context.Context, in ConfirmReservationInput) (*reservation.Reservation, error) {
	var (
		amount  reservation.Money
		expired bool
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expired = false

		r, err := lockReservation(ctx, tx, in.ReservationID)
		if err != nil {
			return err
		}
		if !r.IsOwnedBy(in.HolderID) {
			return ErrReservationAccess
		}

		expired, err = c.expireIfLapsed(ctx, tx, r, c.clock.Now())
		if err != nil || expired {
			return err
		}
		if r.Status() != reservation.StatusHeld {
			return errs.Wrapf(ErrReservationNotHeld, "status %s", r.Status())
		}

		amount = r.TotalPrice()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrReservationExpired
	}

	result, err := c.gateway.Charge(ctx, shared.ChargeRequest{
		ReservationID: in.ReservationID,
		Amount:        amount,
		Details:       in.Payment,
	})
	if err != nil {
		c.logger.Error("payment gateway call failed",
			"reservation_id", in.ReservationID,
			"error", err.Error())
		return nil, errs.Mark(errs.Wrap(err, "charge"), ErrPaymentUnavailable)
	}

	var (
		confirmed *reservation.Reservation
		lost      bool
	)
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		confirmed, lost = nil, false

		r, err := lockReservation(ctx, tx, in.ReservationID)
		if err != nil {
			return err
		}

		now := c.clock.Now()
		lost, err = c.expireIfLapsed(ctx, tx, r, now)
		if err != nil || lost {
			return err
		}
		if r.Status() != reservation.StatusHeld {
			lost = true
			return nil
		}

		if !result.Success {
			if err := r.FailPayment(now, c.policy.PaymentCooldown); err != nil {
				return validation(err)
			}
			return saveTransition(ctx, tx, reservation.EventPaymentFailed, r, now)
		}

		if err := r.Confirm(now, result.Reference); err != nil {
			return validation(err)
		}
		if err := saveTransition(ctx, tx, reservation.EventConfirmed, r, now); err != nil {
			return err
		}
		confirmed = r
		return nil
	})
	if err != nil {
		if result.Success {
			c.logger.Error("charge succeeded but confirmation was not stored",
				"reservation_id", in.ReservationID,
				"payment_reference", result.Reference,
				"error", err.Error())
		}
		return nil, err
	}

	if lost {
		if result.Success {
			// needs a manual refund
			c.logger.Warn("charge succeeded for a reservation that is no longer held",
				"reservation_id", in.ReservationID,
				"payment_reference", result.Reference)
		}
		return nil, ErrReservationExpired
	}

	if !result.Success {
		c.logger.Info("payment declined",
			"reservation_id", in.ReservationID,
			"cooldown", c.policy.PaymentCooldown)
		return nil, newPaymentFailure(result.Message)
	}

	c.logger.Info("reservation confirmed",
		"reservation_id", confirmed.ID(),
		"payment_reference", result.Reference)
	return confirmed, nil
}

// CancelReservation releases a hold on behalf of its holder or an admin.
// Confirmed reservations cannot be cancelled.
func (c *reservationCommandsImpl) CancelReservation(ctx context.Context, reservationID uuid.UUID, actor shared.Actor) (*reservation.Reservation, error) {
	var (
		cancelled *reservation.Reservation
		expired   bool
	)
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cancelled, expired = nil, false

		r, err := lockReservation(ctx, tx, reservationID)
		if err != nil {
			return err
		}
		if !actor.IsAdmin() && !r.IsOwnedBy(actor.ID) {
			return ErrReservationAccess
		}

		now := c.clock.Now()
		expired, err = c.expireIfLapsed(ctx, tx, r, now)
		if err != nil || expired {
			return err
		}

		if err := r.Cancel(now); err != nil {
			if errs.Is(err, reservation.ErrNotHeld) {
				return errs.Wrapf(ErrReservationNotHeld, "status %s", r.Status())
			}
			return validation(err)
		}
		if err := saveTransition(ctx, tx, reservation.EventCancelled, r, now); err != nil {
			return err
		}
		cancelled = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	if expired {
		return nil, ErrReservationExpired
	}

	c.logger.Info("reservation cancelled",
		"reservation_id", cancelled.ID(),
		"actor_id", actor.ID,
		"actor_role", actor.Role)
	return cancelled, nil
}

// expireIfLapsed cancels a hold whose deadline passed and stores the change.
func (c *reservationCommandsImpl) expireIfLapsed(ctx context.Context, tx shared.Tx, r *reservation.Reservation, now time.Time) (bool, error) {
	if !r.ExpireIfLapsed(now) {
		return false, nil
	}
	if err := saveTransition(ctx, tx, reservation.EventCancelled, r, now); err != nil {
		return false, err
	}
	c.logger.Info("reservation hold expired", "reservation_id", r.ID())
	return true, nil
}

func lockReservation(ctx context.Context, tx shared.Tx, id uuid.UUID) (*reservation.Reservation, error) {
	r, err := tx.Reservations().LockByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, dbFailure(err)
	}
	return r, nil
}

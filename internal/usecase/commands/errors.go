package commands

import (
	"court-reservation/internal/pkg/errs"
)

var (
	ErrResourceNotFound              = errs.Mark(errs.New("resource not found"), errs.ErrNotFound)
	ErrReservationNotFound           = errs.Mark(errs.New("reservation not found"), errs.ErrNotFound)
	ErrSlotConflict                  = errs.Mark(errs.New("slot already booked or held"), errs.ErrConflict)
	ErrReservationNotHeld            = errs.Mark(errs.New("reservation is no longer held"), errs.ErrConflict)
	ErrResourceHasFutureReservations = errs.Mark(errs.New("resource has upcoming confirmed reservations"), errs.ErrConflict)
	ErrReservationExpired            = errs.Mark(errs.New("reservation hold lapsed; start a new reservation"), errs.ErrExpired)
	ErrReservationAccess             = errs.Mark(errs.New("reservation belongs to another holder"), errs.ErrForbidden)
	ErrPaymentUnavailable            = errs.Mark(errs.New("payment gateway unavailable"), errs.ErrUnavailable)
)

// PaymentFailure is a declined charge. It is marked with errs.ErrPaymentFailed
// and carries the gateway message for the holder.
type PaymentFailure struct {
	Message string
}

func (e *PaymentFailure) Error() string {
	return "payment declined: " + e.Message
}

func newPaymentFailure(message string) error {
	return errs.Mark(&PaymentFailure{Message: message}, errs.ErrPaymentFailed)
}

func validation(err error) error {
	return errs.Mark(err, errs.ErrValidation)
}

func dbFailure(err error) error {
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

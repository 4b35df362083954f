package reservation

import (
	"court-reservation/internal/pkg/errs"
)

// Status is closed: values only come from the constants below or ParseStatus.
type Status string

const (
	StatusHeld      Status = "held"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", errs.Wrapf(ErrInvalidStatus, "status %q", s)
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusHeld, StatusConfirmed, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsOccupying reports whether a reservation in this status blocks its units.
func (s Status) IsOccupying() bool {
	return s == StatusHeld || s == StatusConfirmed
}

func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusHeld && (next == StatusConfirmed || next == StatusCancelled)
}

type EventKind string

const (
	EventHeld          EventKind = "reservation.held"
	EventConfirmed     EventKind = "reservation.confirmed"
	EventCancelled     EventKind = "reservation.cancelled"
	EventPaymentFailed EventKind = "reservation.payment_failed"
)

func (k EventKind) String() string {
	return string(k)
}

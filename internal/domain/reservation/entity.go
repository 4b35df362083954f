package reservation

import (
	"time"

	"court-reservation/internal/domain/slot"
	"court-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidDuration       = errs.New("duration must be between 1 and 8 hours")
	ErrStartNotAligned       = errs.New("start time must be on the hour")
	ErrStartInPast           = errs.New("start time cannot be in the past")
	ErrNegativePrice         = errs.New("price cannot be negative")
	ErrInvalidStatus         = errs.New("invalid reservation status")
	ErrNotHeld               = errs.New("reservation is not held")
	ErrHoldExpired           = errs.New("reservation hold has expired")
	ErrEmptyPaymentReference = errs.New("payment reference cannot be empty")
)

const (
	MinDurationUnits = 1
	MaxDurationUnits = 8

	DefaultHoldTTL         = 10 * time.Minute
	DefaultPaymentCooldown = 30 * time.Second
)

type Reservation struct {
	id                   uuid.UUID
	resourceID           uuid.UUID
	holderID             uuid.UUID
	startAt              time.Time
	durationUnits        int
	totalPrice           Money
	status               Status
	paymentReference     *string
	holdExpiresAt        *time.Time
	paymentCooldownUntil *time.Time
	createdAt            time.Time
	updatedAt            time.Time
}

// NewHold creates a Held reservation priced at unitPrice per hour.
func NewHold(
	resourceID, holderID uuid.UUID,
	startAt time.Time,
	durationUnits int,
	unitPrice Money,
	now time.Time,
	holdTTL time.Duration,
) (*Reservation, error) {
	if err := ValidateDuration(durationUnits); err != nil {
		return nil, err
	}
	if !slot.IsAligned(startAt) {
		return nil, ErrStartNotAligned
	}
	if !startAt.After(now) {
		return nil, ErrStartInPast
	}
	if holdTTL <= 0 {
		holdTTL = DefaultHoldTTL
	}

	expiresAt := now.Add(holdTTL)
	return &Reservation{
		id:            uuid.New(),
		resourceID:    resourceID,
		holderID:      holderID,
		startAt:       startAt,
		durationUnits: durationUnits,
		totalPrice:    unitPrice.Times(durationUnits),
		status:        StatusHeld,
		holdExpiresAt: &expiresAt,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

func Reconstruct(
	id, resourceID, holderID uuid.UUID,
	startAt time.Time,
	durationUnits int,
	totalPrice Money,
	status Status,
	paymentReference *string,
	holdExpiresAt, paymentCooldownUntil *time.Time,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:                   id,
		resourceID:           resourceID,
		holderID:             holderID,
		startAt:              startAt,
		durationUnits:        durationUnits,
		totalPrice:           totalPrice,
		status:               status,
		paymentReference:     paymentReference,
		holdExpiresAt:        holdExpiresAt,
		paymentCooldownUntil: paymentCooldownUntil,
		createdAt:            createdAt,
		updatedAt:            updatedAt,
	}
}

func ValidateDuration(durationUnits int) error {
	if durationUnits < MinDurationUnits || durationUnits > MaxDurationUnits {
		return ErrInvalidDuration
	}
	return nil
}

func (r *Reservation) EndAt() time.Time {
	return r.startAt.Add(time.Duration(r.durationUnits) * slot.Unit)
}

func (r *Reservation) OccupiedUnits() []slot.Label {
	return slot.OccupiedUnits(r.startAt, r.durationUnits)
}

func (r *Reservation) IsOccupying() bool {
	return r.status.IsOccupying()
}

func (r *Reservation) IsOwnedBy(holderID uuid.UUID) bool {
	return r.holderID == holderID
}

// Overlaps uses half-open intervals: [start, end).
func (r *Reservation) Overlaps(start, end time.Time) bool {
	return r.startAt.Before(end) && r.EndAt().After(start)
}

func (r *Reservation) HasExpiredHold(now time.Time) bool {
	return r.status == StatusHeld && r.holdExpiresAt != nil && now.After(*r.holdExpiresAt)
}

func (r *Reservation) HasLapsedCooldown(now time.Time) bool {
	return r.status == StatusHeld && r.paymentCooldownUntil != nil && now.After(*r.paymentCooldownUntil)
}

// IsReleasable matches the sweep criteria.
func (r *Reservation) IsReleasable(now time.Time) bool {
	return r.HasExpiredHold(now) || r.HasLapsedCooldown(now)
}

// ExpireIfLapsed cancels a held reservation whose hold has run out.
func (r *Reservation) ExpireIfLapsed(now time.Time) bool {
	if !r.HasExpiredHold(now) {
		return false
	}
	r.cancel(now)
	return true
}

// Release cancels a reservation picked up by the sweep.
func (r *Reservation) Release(now time.Time) bool {
	if !r.IsReleasable(now) {
		return false
	}
	r.cancel(now)
	return true
}

func (r *Reservation) Confirm(now time.Time, paymentReference string) error {
	if r.HasExpiredHold(now) {
		return ErrHoldExpired
	}
	if err := r.ensureTransition(StatusConfirmed); err != nil {
		return err
	}
	if paymentReference == "" {
		return ErrEmptyPaymentReference
	}
	r.status = StatusConfirmed
	r.paymentReference = &paymentReference
	r.holdExpiresAt = nil
	r.paymentCooldownUntil = nil
	r.updatedAt = now
	return nil
}

// FailPayment keeps the reservation held and starts the cooldown.
func (r *Reservation) FailPayment(now time.Time, cooldown time.Duration) error {
	if err := r.ensureActiveHold(now); err != nil {
		return err
	}
	if cooldown <= 0 {
		cooldown = DefaultPaymentCooldown
	}
	until := now.Add(cooldown)
	r.paymentCooldownUntil = &until
	r.updatedAt = now
	return nil
}

func (r *Reservation) Cancel(now time.Time) error {
	if err := r.ensureTransition(StatusCancelled); err != nil {
		return err
	}
	r.cancel(now)
	return nil
}

// ensureActiveHold guards changes that keep the reservation held.
func (r *Reservation) ensureActiveHold(now time.Time) error {
	if r.HasExpiredHold(now) {
		return ErrHoldExpired
	}
	if r.status != StatusHeld {
		return errs.Wrapf(ErrNotHeld, "status %s", r.status)
	}
	return nil
}

func (r *Reservation) ensureTransition(next Status) error {
	if !r.status.CanTransitionTo(next) {
		return errs.Wrapf(ErrNotHeld, "%s -> %s", r.status, next)
	}
	return nil
}

// cancel is only reached from a held reservation.
func (r *Reservation) cancel(now time.Time) {
	r.status = StatusCancelled
	r.holdExpiresAt = nil
	r.paymentCooldownUntil = nil
	r.updatedAt = now
}

func (r *Reservation) ID() uuid.UUID                    { return r.id }
func (r *Reservation) ResourceID() uuid.UUID            { return r.resourceID }
func (r *Reservation) HolderID() uuid.UUID              { return r.holderID }
func (r *Reservation) StartAt() time.Time               { return r.startAt }
func (r *Reservation) DurationUnits() int               { return r.durationUnits }
func (r *Reservation) TotalPrice() Money                { return r.totalPrice }
func (r *Reservation) Status() Status                   { return r.status }
func (r *Reservation) PaymentReference() *string        { return r.paymentReference }
func (r *Reservation) HoldExpiresAt() *time.Time        { return r.holdExpiresAt }
func (r *Reservation) PaymentCooldownUntil() *time.Time { return r.paymentCooldownUntil }
func (r *Reservation) CreatedAt() time.Time             { return r.createdAt }
func (r *Reservation) UpdatedAt() time.Time             { return r.updatedAt }

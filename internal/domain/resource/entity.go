package resource

import (
	"strings"
	"time"

	"court-reservation/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyResourceName   = errs.New("resource name cannot be empty")
	ErrResourceNameTooLong = errs.New("resource name is too long (max 255 characters)")
	ErrNegativeHourlyPrice = errs.New("hourly price cannot be negative")
	ErrResourceDisabled    = errs.New("resource is disabled")

	ErrOutsideOperatingHours = errs.New("reservation falls outside operating hours")
)

const (
	MaxResourceNameLength = 255
)

type Resource struct {
	id          uuid.UUID
	name        string
	description *string
	hourlyPrice decimal.Decimal
	status      Status
	hours       OperatingHours
	createdAt   time.Time
	updatedAt   time.Time
}

func NewResource(name string, description *string, hourlyPrice decimal.Decimal, hours OperatingHours, now time.Time) (*Resource, error) {
	if err := validateResourceName(name); err != nil {
		return nil, err
	}

	if err := validateHourlyPrice(hourlyPrice); err != nil {
		return nil, err
	}

	return &Resource{
		id:          uuid.New(),
		name:        strings.TrimSpace(name),
		description: description,
		hourlyPrice: hourlyPrice.Round(2),
		status:      StatusActive,
		hours:       hours,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	name string,
	description *string,
	hourlyPrice decimal.Decimal,
	status Status,
	hours OperatingHours,
	createdAt, updatedAt time.Time,
) *Resource {
	return &Resource{
		id:          id,
		name:        name,
		description: description,
		hourlyPrice: hourlyPrice,
		status:      status,
		hours:       hours,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (r *Resource) IsActive() bool {
	return r.status == StatusActive
}

// Disable blocks new holds; existing reservations are untouched.
func (r *Resource) Disable(now time.Time) {
	r.status = StatusDisabled
	r.updatedAt = now
}

func (r *Resource) Enable(now time.Time) {
	r.status = StatusActive
	r.updatedAt = now
}

// EnsureBookable rejects a run that the resource cannot host.
func (r *Resource) EnsureBookable(start time.Time, durationUnits int) error {
	if !r.IsActive() {
		return ErrResourceDisabled
	}
	if !r.hours.Contains(start, durationUnits) {
		return errs.Wrapf(ErrOutsideOperatingHours, "%s for %dh outside %s-%s",
			start.Format(time.RFC3339), durationUnits, r.hours.Opens(), r.hours.Closes())
	}
	return nil
}

func validateResourceName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len(name) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	return nil
}

func validateHourlyPrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrNegativeHourlyPrice
	}
	return nil
}

func (r *Resource) ID() uuid.UUID                  { return r.id }
func (r *Resource) Name() string                   { return r.name }
func (r *Resource) Description() *string           { return r.description }
func (r *Resource) HourlyPrice() decimal.Decimal   { return r.hourlyPrice }
func (r *Resource) Status() Status                 { return r.status }
func (r *Resource) OperatingHours() OperatingHours { return r.hours }
func (r *Resource) CreatedAt() time.Time           { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time           { return r.updatedAt }

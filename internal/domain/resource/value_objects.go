package resource

import (
	"time"

	"court-reservation/internal/domain/slot"
	"court-reservation/internal/pkg/errs"
)

var (
	ErrInvalidStatus         = errs.New("invalid resource status")
	ErrInvalidOperatingHours = errs.New("operating hours must open before they close")
)

type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusDisabled:
		return Status(s), nil
	default:
		return "", errs.Wrapf(ErrInvalidStatus, "status %q", s)
	}
}

func (s Status) String() string {
	return string(s)
}

// DefaultOperatingHours apply when a resource has none configured.
var DefaultOperatingHours = OperatingHours{
	opens:  slot.MustTimeOfDay(8, 0),
	closes: slot.MustTimeOfDay(22, 0),
}

type OperatingHours struct {
	opens  slot.TimeOfDay
	closes slot.TimeOfDay
}

func NewOperatingHours(opens, closes slot.TimeOfDay) (OperatingHours, error) {
	if !opens.Before(closes) {
		return OperatingHours{}, errs.Wrapf(ErrInvalidOperatingHours, "%s-%s", opens, closes)
	}
	return OperatingHours{opens: opens, closes: closes}, nil
}

// OperatingHoursOrDefault fills missing bounds from DefaultOperatingHours.
func OperatingHoursOrDefault(opens, closes *slot.TimeOfDay) (OperatingHours, error) {
	o := DefaultOperatingHours.opens
	c := DefaultOperatingHours.closes
	if opens != nil {
		o = *opens
	}
	if closes != nil {
		c = *closes
	}
	return NewOperatingHours(o, c)
}

func (h OperatingHours) Opens() slot.TimeOfDay  { return h.opens }
func (h OperatingHours) Closes() slot.TimeOfDay { return h.closes }

func (h OperatingHours) OpensOn(day time.Time) time.Time {
	return h.opens.On(day)
}

func (h OperatingHours) ClosesOn(day time.Time) time.Time {
	return h.closes.On(day)
}

func (h OperatingHours) Grid(day time.Time) ([]slot.Label, error) {
	return slot.GenerateGrid(day, h.opens, h.closes)
}

// Contains reports whether every unit of the run starts inside operating
// hours of start's calendar day.
func (h OperatingHours) Contains(start time.Time, durationUnits int) bool {
	if durationUnits <= 0 {
		return false
	}
	open := h.OpensOn(start)
	closeAt := h.ClosesOn(start)
	last := start.Add(time.Duration(durationUnits-1) * slot.Unit)
	return !start.Before(open) && last.Before(closeAt)
}

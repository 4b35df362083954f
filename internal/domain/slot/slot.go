// Package slot converts instants and durations into hourly schedule units.
package slot

import (
	"errors"
	"fmt"
	"time"
)

const (
	// Unit is the fixed granularity of the schedule.
	Unit = time.Hour

	labelLayout = "15:04"
)

var (
	ErrInvalidOperatingHours = errors.New("operating hours end must be after start")
	ErrInvalidTimeOfDay      = errors.New("invalid time of day")
	ErrInvalidLabel          = errors.New("invalid unit label")
	ErrEmptySpan             = errors.New("span requires at least one label")
	ErrNonConsecutiveLabels  = errors.New("labels are not consecutive hourly units")
)

// Label identifies a unit by its start time of day, e.g. "14:00".
type Label string

func LabelOf(t time.Time) Label {
	return Label(t.Format(labelLayout))
}

func (l Label) String() string {
	return string(l)
}

func (l Label) TimeOfDay() (TimeOfDay, error) {
	return ParseTimeOfDay(string(l))
}

// TimeOfDay is a wall-clock time expressed in minutes since midnight.
type TimeOfDay struct {
	minutes int
}

func NewTimeOfDay(hour, minute int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeOfDay, hour, minute)
	}
	return TimeOfDay{minutes: hour*60 + minute}, nil
}

func MustTimeOfDay(hour, minute int) TimeOfDay {
	t, err := NewTimeOfDay(hour, minute)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay accepts "HH:MM" and "HH:MM:SS" (seconds must be zero).
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{labelLayout, "15:04:05"} {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Second() != 0 {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
		return NewTimeOfDay(t.Hour(), t.Minute())
	}
	return TimeOfDay{}, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
}

func (t TimeOfDay) Hour() int { return t.minutes / 60 }

func (t TimeOfDay) Minute() int { return t.minutes % 60 }

func (t TimeOfDay) Minutes() int { return t.minutes }

func (t TimeOfDay) Label() Label { return Label(t.String()) }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.minutes < o.minutes
}

// On anchors the time of day to the calendar day of day, in day's location.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), 0, 0, day.Location())
}

func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsAligned reports whether t sits exactly on a unit boundary.
func IsAligned(t time.Time) bool {
	return t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0
}

// OccupiedUnits returns the labels of the units occupied by a run of
// durationUnits hours beginning at start. Labels repeat past midnight.
func OccupiedUnits(start time.Time, durationUnits int) []Label {
	if durationUnits <= 0 {
		return []Label{}
	}
	labels := make([]Label, 0, durationUnits)
	for k := range durationUnits {
		labels = append(labels, LabelOf(start.Add(time.Duration(k)*Unit)))
	}
	return labels
}

// GenerateGrid lists every unit from opens (inclusive) to closes (exclusive).
func GenerateGrid(day time.Time, opens, closes TimeOfDay) ([]Label, error) {
	if !opens.Before(closes) {
		return nil, fmt.Errorf("%w: %s-%s", ErrInvalidOperatingHours, opens, closes)
	}
	from := opens.On(day)
	to := closes.On(day)
	grid := make([]Label, 0, (closes.Minutes()-opens.Minutes())/60+1)
	for t := from; t.Before(to); t = t.Add(Unit) {
		grid = append(grid, LabelOf(t))
	}
	return grid, nil
}

// Span is a contiguous run of units on one anchor day.
type Span struct {
	Start         time.Time
	DurationUnits int
}

func (s Span) End() time.Time {
	return s.Start.Add(time.Duration(s.DurationUnits) * Unit)
}

// SpanOf rebuilds the span described by consecutive labels, anchored at day.
// A run crossing midnight keeps counting forward from the first label.
func SpanOf(day time.Time, labels []Label) (Span, error) {
	if len(labels) == 0 {
		return Span{}, ErrEmptySpan
	}
	first, err := labels[0].TimeOfDay()
	if err != nil {
		return Span{}, fmt.Errorf("%w: %q", ErrInvalidLabel, labels[0])
	}
	start := first.On(day)
	for k, l := range labels {
		if LabelOf(start.Add(time.Duration(k)*Unit)) != l {
			return Span{}, fmt.Errorf("%w: %q at position %d", ErrNonConsecutiveLabels, l, k)
		}
	}
	return Span{Start: start, DurationUnits: len(labels)}, nil
}

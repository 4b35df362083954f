package queries

import (
	"context"
	"time"

	"court-reservation/internal/domain/availability"
	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/domain/resource"
	"court-reservation/internal/domain/slot"
	"court-reservation/internal/infra"
	"court-reservation/internal/pkg/clock"
	"court-reservation/internal/pkg/errs"

	"github.com/google/uuid"
)

//go:generate mockgen -source=availability.go -destination=../../../tests/mock/queries/availability_mock.go -package=queriesmock

const DateLayout = "2006-01-02"

var (
	ErrResourceNotFound = errs.Mark(errs.New("resource not found"), errs.ErrNotFound)
	ErrInvalidDate      = errs.Mark(errs.New("date must be YYYY-MM-DD"), errs.ErrValidation)
	// start checks agree with the ones HoldReservation applies
	ErrStartNotAligned = errs.Mark(reservation.ErrStartNotAligned, errs.ErrValidation)
	ErrStartInPast     = errs.Mark(reservation.ErrStartInPast, errs.ErrValidation)
)

type AvailabilityQueries interface {
	ComputeAvailability(ctx context.Context, resourceID uuid.UUID, date string) (*AvailabilityView, error)
	MaxAvailableDurations(ctx context.Context, resourceID uuid.UUID, start time.Time) (*DurationsView, error)
}

// Read stores run outside any transaction; their results are advisory.
type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
}

type ScheduleReadStore interface {
	FindActiveStartingBetween(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*reservation.Reservation, error)
}

type availabilityQueriesImpl struct {
	resources ResourceReadStore
	schedule  ScheduleReadStore
	clock     clock.Clock
	loc       *time.Location
}

func NewAvailabilityQueries(resources ResourceReadStore, schedule ScheduleReadStore, clk clock.Clock, loc *time.Location) AvailabilityQueries {
	if loc == nil {
		loc = time.Local
	}
	return &availabilityQueriesImpl{
		resources: resources,
		schedule:  schedule,
		clock:     clk,
		loc:       loc,
	}
}

func (q *availabilityQueriesImpl) ComputeAvailability(ctx context.Context, resourceID uuid.UUID, date string) (*AvailabilityView, error) {
	day, err := time.ParseInLocation(DateLayout, date, q.loc)
	if err != nil {
		return nil, errs.Wrap(ErrInvalidDate, date)
	}

	res, avail, err := q.dayAvailability(ctx, resourceID, day)
	if err != nil {
		return nil, err
	}

	return &AvailabilityView{
		ResourceID: res.ID(),
		Date:       day.Format(DateLayout),
		Available:  labelStrings(avail.Available),
		Held:       labelStrings(avail.Held),
		Confirmed:  labelStrings(avail.Confirmed),
	}, nil
}

func (q *availabilityQueriesImpl) MaxAvailableDurations(ctx context.Context, resourceID uuid.UUID, start time.Time) (*DurationsView, error) {
	// alignment is judged in the schedule timezone; a half-hour offset
	// client can send a start that looks aligned in its own zone
	start = start.In(q.loc)
	if !slot.IsAligned(start) {
		return nil, errs.Wrap(ErrStartNotAligned, start.Format(time.RFC3339))
	}
	if !start.After(q.clock.Now()) {
		return nil, errs.Wrap(ErrStartInPast, start.Format(time.RFC3339))
	}

	res, avail, err := q.dayAvailability(ctx, resourceID, start)
	if err != nil {
		return nil, err
	}

	resolution := availability.ResolveDurations(start, res.OperatingHours(), avail.Unavailable())
	return &DurationsView{
		ResourceID:  res.ID(),
		StartAt:     start,
		Durations:   resolution.Durations,
		MaxDuration: resolution.Max(),
		Reason:      resolution.Reason(),
	}, nil
}

func (q *availabilityQueriesImpl) dayAvailability(ctx context.Context, resourceID uuid.UUID, day time.Time) (*resource.Resource, availability.Availability, error) {
	res, err := q.resources.FindByID(ctx, resourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, availability.Availability{}, ErrResourceNotFound
		}
		return nil, availability.Availability{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	from := slot.StartOfDay(day)
	to := from.AddDate(0, 0, 1)
	reservations, err := q.schedule.FindActiveStartingBetween(ctx, resourceID, from, to)
	if err != nil {
		return nil, availability.Availability{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	grid, err := res.OperatingHours().Grid(from)
	if err != nil {
		return nil, availability.Availability{}, err
	}

	return res, availability.Compute(grid, reservations), nil
}

func labelStrings(labels []slot.Label) []string {
	out := make([]string, len(labels))
	for i, l := range labels {
		out[i] = l.String()
	}
	return out
}

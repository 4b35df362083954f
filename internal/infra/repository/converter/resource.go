package converter

import (
	"time"

	"court-reservation/internal/domain/resource"
	"court-reservation/internal/domain/slot"
	sqlc "court-reservation/internal/infra/sqlc/generated"
	"court-reservation/internal/pkg/errs"
	"court-reservation/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// ResourceFromRow rebuilds a resource; timestamps are moved into loc.
func ResourceFromRow(row sqlc.GetResourceByIDRow, loc *time.Location) (*resource.Resource, error) {
	price, err := pgconv.DecimalFromText(row.HourlyPrice)
	if err != nil {
		return nil, errs.Wrapf(err, "resource %s hourly_price", row.ID)
	}

	status, err := resource.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	opens, err := timeOfDayFromPgtime(row.OpensAt)
	if err != nil {
		return nil, err
	}
	closes, err := timeOfDayFromPgtime(row.ClosesAt)
	if err != nil {
		return nil, err
	}
	hours, err := resource.OperatingHoursOrDefault(opens, closes)
	if err != nil {
		return nil, errs.Wrapf(err, "resource %s", row.ID)
	}

	return resource.Reconstruct(
		row.ID,
		row.Name,
		pgconv.StringPtrFromPgtype(row.Description),
		price,
		status,
		hours,
		row.CreatedAt.Time.In(loc),
		row.UpdatedAt.Time.In(loc),
	), nil
}

func timeOfDayFromPgtime(pt pgtype.Time) (*slot.TimeOfDay, error) {
	minutes := pgconv.MinutesFromPgtime(pt)
	if minutes == nil {
		return nil, nil
	}
	tod, err := slot.NewTimeOfDay(*minutes/60, *minutes%60)
	if err != nil {
		return nil, err
	}
	return &tod, nil
}

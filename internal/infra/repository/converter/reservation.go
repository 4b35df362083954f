package converter

import (
	"time"

	"court-reservation/internal/domain/reservation"
	sqlc "court-reservation/internal/infra/sqlc/generated"
	"court-reservation/internal/pkg/errs"
	"court-reservation/internal/pkg/pgconv"
)

// ReservationFromRow rebuilds a reservation with every instant moved into
// loc, so hour labels are computed in the schedule timezone.
func ReservationFromRow(row sqlc.LockReservationByIDRow, loc *time.Location) (*reservation.Reservation, error) {
	amount, err := pgconv.DecimalFromText(row.TotalPrice)
	if err != nil {
		return nil, errs.Wrapf(err, "reservation %s total_price", row.ID)
	}
	total, err := reservation.NewMoney(amount)
	if err != nil {
		return nil, err
	}

	status, err := reservation.ParseStatus(row.Status)
	if err != nil {
		return nil, err
	}

	return reservation.Reconstruct(
		row.ID,
		row.ResourceID,
		row.HolderID,
		row.StartAt.Time.In(loc),
		int(row.DurationUnits),
		total,
		status,
		pgconv.StringPtrFromPgtype(row.PaymentReference),
		inLocation(pgconv.TimePtrFromPgtype(row.HoldExpiresAt), loc),
		inLocation(pgconv.TimePtrFromPgtype(row.PaymentCooldownUntil), loc),
		row.CreatedAt.Time.In(loc),
		row.UpdatedAt.Time.In(loc),
	), nil
}

func ReservationToCreateParams(r *reservation.Reservation) sqlc.CreateReservationParams {
	return sqlc.CreateReservationParams{
		ID:                   r.ID(),
		ResourceID:           r.ResourceID(),
		HolderID:             r.HolderID(),
		StartAt:              pgconv.TimeToPgtype(r.StartAt()),
		EndAt:                pgconv.TimeToPgtype(r.EndAt()),
		DurationUnits:        int32(r.DurationUnits()), // #nosec G115 -- bounded to 1..8 by the entity
		TotalPrice:           pgconv.DecimalToText(r.TotalPrice().Decimal()),
		Status:               r.Status().String(),
		PaymentReference:     pgconv.StringPtrToPgtype(r.PaymentReference()),
		HoldExpiresAt:        pgconv.TimePtrToPgtype(r.HoldExpiresAt()),
		PaymentCooldownUntil: pgconv.TimePtrToPgtype(r.PaymentCooldownUntil()),
		CreatedAt:            pgconv.TimeToPgtype(r.CreatedAt()),
		UpdatedAt:            pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

func ReservationToUpdateParams(r *reservation.Reservation) sqlc.UpdateReservationStateParams {
	return sqlc.UpdateReservationStateParams{
		ID:                   r.ID(),
		Status:               r.Status().String(),
		PaymentReference:     pgconv.StringPtrToPgtype(r.PaymentReference()),
		HoldExpiresAt:        pgconv.TimePtrToPgtype(r.HoldExpiresAt()),
		PaymentCooldownUntil: pgconv.TimePtrToPgtype(r.PaymentCooldownUntil()),
		UpdatedAt:            pgconv.TimeToPgtype(r.UpdatedAt()),
	}
}

func inLocation(t *time.Time, loc *time.Location) *time.Time {
	if t == nil {
		return nil
	}
	v := t.In(loc)
	return &v
}

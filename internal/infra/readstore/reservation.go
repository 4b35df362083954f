package readstore

import (
	"context"
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/infra"
	"court-reservation/internal/infra/repository/converter"
	sqlc "court-reservation/internal/infra/sqlc/generated"
	"court-reservation/internal/pkg/pgconv"
	"court-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationViewQueries interface {
	GetReservationViewByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetReservationViewByIDRow, error)
	ListActiveReservationsStartingBetween(ctx context.Context, db sqlc.DBTX, arg sqlc.ListActiveReservationsStartingBetweenParams) ([]sqlc.ListActiveReservationsStartingBetweenRow, error)
}

type ReservationReadStore struct {
	queries ReservationViewQueries
	db      sqlc.DBTX
	loc     *time.Location
}

func NewReservationReadStore(queries ReservationViewQueries, db sqlc.DBTX, loc *time.Location) *ReservationReadStore {
	return &ReservationReadStore{
		queries: queries,
		db:      db,
		loc:     loc,
	}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	row, err := r.queries.GetReservationViewByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}

	return r.rowToReservationView(row), nil
}

// FindActiveStartingBetween returns held and confirmed reservations with start in [from, to).
func (r *ReservationReadStore) FindActiveStartingBetween(ctx context.Context, resourceID uuid.UUID, from, to time.Time) ([]*reservation.Reservation, error) {
	params := sqlc.ListActiveReservationsStartingBetweenParams{
		ResourceID: resourceID,
		FromAt:     pgconv.TimeToPgtype(from),
		ToAt:       pgconv.TimeToPgtype(to),
	}

	rows, err := r.queries.ListActiveReservationsStartingBetween(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list reservations", err)
	}

	result := make([]*reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		res, err := converter.ReservationFromRow(sqlc.LockReservationByIDRow(row), r.loc)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert reservation", err)
		}
		result = append(result, res)
	}
	return result, nil
}

func (r *ReservationReadStore) rowToReservationView(row sqlc.GetReservationViewByIDRow) *queries.ReservationView {
	return &queries.ReservationView{
		ID:                   row.ID,
		ResourceID:           row.ResourceID,
		ResourceName:         row.ResourceName,
		HolderID:             row.HolderID,
		StartAt:              row.StartAt.Time.In(r.loc),
		EndAt:                row.EndAt.Time.In(r.loc),
		DurationUnits:        int(row.DurationUnits),
		TotalPrice:           row.TotalPrice,
		Status:               row.Status,
		PaymentReference:     pgconv.StringPtrFromPgtype(row.PaymentReference),
		HoldExpiresAt:        r.timePtr(row.HoldExpiresAt),
		PaymentCooldownUntil: r.timePtr(row.PaymentCooldownUntil),
		CreatedAt:            row.CreatedAt.Time.In(r.loc),
		UpdatedAt:            row.UpdatedAt.Time.In(r.loc),
	}
}

func (r *ReservationReadStore) timePtr(pt pgtype.Timestamptz) *time.Time {
	t := pgconv.TimePtrFromPgtype(pt)
	if t == nil {
		return nil
	}
	local := t.In(r.loc)
	return &local
}

package repository

import (
	"context"
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/infra"
	"court-reservation/internal/infra/repository/converter"
	sqlc "court-reservation/internal/infra/sqlc/generated"
	"court-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationWriteQueries interface {
	LockReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.LockReservationByIDRow, error)
	LockOverlappingReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.LockOverlappingReservationsParams) ([]sqlc.LockOverlappingReservationsRow, error)
	CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) error
	UpdateReservationState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationStateParams) (int64, error)
	CancelReleasableReservations(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) ([]sqlc.CancelReleasableReservationsRow, error)
}

type ReservationRepository struct {
	queries ReservationWriteQueries
	db      sqlc.DBTX
	loc     *time.Location
}

func NewReservationRepository(queries ReservationWriteQueries, db sqlc.DBTX, loc *time.Location) *ReservationRepository {
	return &ReservationRepository{
		queries: queries,
		db:      db,
		loc:     loc,
	}
}

func (r *ReservationRepository) LockByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error) {
	row, err := r.queries.LockReservationByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}

	res, err := converter.ReservationFromRow(row, r.loc)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert reservation", err)
	}
	return res, nil
}

func (r *ReservationRepository) LockOverlapping(ctx context.Context, resourceID uuid.UUID, start, end time.Time) ([]*reservation.Reservation, error) {
	params := sqlc.LockOverlappingReservationsParams{
		ResourceID: resourceID,
		EndAt:      pgconv.TimeToPgtype(end),
		StartAt:    pgconv.TimeToPgtype(start),
	}
	rows, err := r.queries.LockOverlappingReservations(ctx, r.db, params)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock overlapping reservations", err)
	}

	out := make([]*reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		res, err := converter.ReservationFromRow(sqlc.LockReservationByIDRow(row), r.loc)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert reservation", err)
		}
		out = append(out, res)
	}
	return out, nil
}

func (r *ReservationRepository) Create(ctx context.Context, res *reservation.Reservation) error {
	params := converter.ReservationToCreateParams(res)

	if err := r.queries.CreateReservation(ctx, r.db, params); err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

func (r *ReservationRepository) Save(ctx context.Context, res *reservation.Reservation) error {
	params := converter.ReservationToUpdateParams(res)

	affected, err := r.queries.UpdateReservationState(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update reservation", err)
	}
	if affected == 0 {
		return infra.NewNotFound("reservation not found")
	}
	return nil
}

func (r *ReservationRepository) CancelReleasable(ctx context.Context, now time.Time) ([]*reservation.Reservation, error) {
	rows, err := r.queries.CancelReleasableReservations(ctx, r.db, pgconv.TimeToPgtype(now))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to release expired reservations", err)
	}

	out := make([]*reservation.Reservation, 0, len(rows))
	for _, row := range rows {
		res, err := converter.ReservationFromRow(sqlc.LockReservationByIDRow(row), r.loc)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to convert reservation", err)
		}
		out = append(out, res)
	}
	return out, nil
}

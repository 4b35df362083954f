package repository

import (
	"context"
	"time"

	"court-reservation/internal/domain/resource"
	"court-reservation/internal/infra"
	"court-reservation/internal/infra/repository/converter"
	sqlc "court-reservation/internal/infra/sqlc/generated"
	"court-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ResourceWriteQueries interface {
	LockResourceByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.LockResourceByIDRow, error)
	UpdateResourceStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateResourceStatusParams) (int64, error)
	CountFutureConfirmedReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.CountFutureConfirmedReservationsParams) (int64, error)
	DeleteResource(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (int64, error)
}

type ResourceRepository struct {
	queries ResourceWriteQueries
	db      sqlc.DBTX
	loc     *time.Location
}

func NewResourceRepository(queries ResourceWriteQueries, db sqlc.DBTX, loc *time.Location) *ResourceRepository {
	return &ResourceRepository{
		queries: queries,
		db:      db,
		loc:     loc,
	}
}

func (r *ResourceRepository) LockByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	row, err := r.queries.LockResourceByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock resource", err)
	}

	res, err := converter.ResourceFromRow(sqlc.GetResourceByIDRow(row), r.loc)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert resource", err)
	}
	return res, nil
}

func (r *ResourceRepository) UpdateStatus(ctx context.Context, res *resource.Resource) error {
	params := sqlc.UpdateResourceStatusParams{
		ID:        res.ID(),
		Status:    res.Status().String(),
		UpdatedAt: pgconv.TimeToPgtype(res.UpdatedAt()),
	}
	affected, err := r.queries.UpdateResourceStatus(ctx, r.db, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update resource status", err)
	}
	if affected == 0 {
		return infra.NewNotFound("resource not found")
	}
	return nil
}

func (r *ResourceRepository) CountFutureConfirmed(ctx context.Context, id uuid.UUID, now time.Time) (int64, error) {
	params := sqlc.CountFutureConfirmedReservationsParams{
		ResourceID: id,
		StartAt:    pgconv.TimeToPgtype(now),
	}
	count, err := r.queries.CountFutureConfirmedReservations(ctx, r.db, params)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count future reservations", err)
	}
	return count, nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.queries.DeleteResource(ctx, r.db, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete resource", err)
	}
	if affected == 0 {
		return infra.NewNotFound("resource not found")
	}
	return nil
}

package readstore

import (
	"context"
	"time"

	"court-reservation/internal/domain/resource"
	"court-reservation/internal/infra"
	"court-reservation/internal/infra/repository/converter"
	sqlc "court-reservation/internal/infra/sqlc/generated"

	"github.com/google/uuid"
)

type ResourceReadQueries interface {
	GetResourceByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.GetResourceByIDRow, error)
}

type ResourceReadStore struct {
	queries ResourceReadQueries
	db      sqlc.DBTX
	loc     *time.Location
}

func NewResourceReadStore(queries ResourceReadQueries, db sqlc.DBTX, loc *time.Location) *ResourceReadStore {
	return &ResourceReadStore{
		queries: queries,
		db:      db,
		loc:     loc,
	}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	row, err := r.queries.GetResourceByID(ctx, r.db, id)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}

	res, err := converter.ResourceFromRow(row, r.loc)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to convert resource", err)
	}
	return res, nil
}

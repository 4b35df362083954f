package queries

import (
	"context"

	"court-reservation/internal/infra"
	"court-reservation/internal/pkg/errs"
	"court-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

//go:generate mockgen -source=reservation.go -destination=../../../tests/mock/queries/reservation_mock.go -package=queriesmock

var (
	ErrReservationNotFound = errs.Mark(errs.New("reservation not found"), errs.ErrNotFound)
	ErrReservationAccess   = errs.Mark(errs.New("reservation belongs to another holder"), errs.ErrForbidden)
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID, actor shared.Actor) (*ReservationView, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
}

type reservationQueriesImpl struct {
	readStore ReservationReadStore
}

func NewReservationQueries(readStore ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{
		readStore: readStore,
	}
}

// GetByID is visible to the holder and to admins.
func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID, actor shared.Actor) (*ReservationView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	if !actor.IsAdmin() && view.HolderID != actor.ID {
		return nil, ErrReservationAccess
	}

	return view, nil
}

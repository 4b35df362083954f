//go:build unit

package repository

import (
	"context"
	"testing"
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/infra"
	sqlc "court-reservation/internal/infra/sqlc/generated"
	"court-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReservationQueries struct {
	mock.Mock
}

func (m *MockReservationQueries) LockReservationByID(ctx context.Context, db sqlc.DBTX, id uuid.UUID) (sqlc.LockReservationByIDRow, error) {
	args := m.Called(ctx, db, id)
	return args.Get(0).(sqlc.LockReservationByIDRow), args.Error(1)
}

func (m *MockReservationQueries) LockOverlappingReservations(ctx context.Context, db sqlc.DBTX, arg sqlc.LockOverlappingReservationsParams) ([]sqlc.LockOverlappingReservationsRow, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).([]sqlc.LockOverlappingReservationsRow), args.Error(1)
}

func (m *MockReservationQueries) CreateReservation(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockReservationQueries) UpdateReservationState(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateReservationStateParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockReservationQueries) CancelReleasableReservations(ctx context.Context, db sqlc.DBTX, now pgtype.Timestamptz) ([]sqlc.CancelReleasableReservationsRow, error) {
	args := m.Called(ctx, db, now)
	return args.Get(0).([]sqlc.CancelReleasableReservationsRow), args.Error(1)
}

func TestReservationLockByID(t *testing.T) {
	held := builder.NewReservationBuilder()
	utc := held.BuildInfra()
	utc.StartAt.Time = utc.StartAt.Time.UTC()

	tests := []struct {
		name      string
		row       sqlc.LockReservationByIDRow
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success", row: utc},
		{name: "not found", mockError: pgx.ErrNoRows, wantKind: infra.KindNotFound},
		{name: "database error", mockError: assert.AnError, wantKind: infra.KindDBFailure},
		{
			name:     "corrupt status",
			row: builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
				b.ID = held.ID
				b.Status = "pending"
			}).BuildInfra(),
			wantKind: infra.KindDBFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockQueries := new(MockReservationQueries)
			mockQueries.On("LockReservationByID", mock.Anything, mock.Anything, held.ID).Return(tt.row, tt.mockError)

			repo := NewReservationRepository(mockQueries, nil, builder.Tokyo)
			got, err := repo.LockByID(context.Background(), held.ID)

			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Nil(t, got)
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, held.ID, got.ID())
				assert.Equal(t, reservation.StatusHeld, got.Status())
				assert.Equal(t, builder.Tokyo, got.StartAt().Location())
				assert.Equal(t, 10, got.StartAt().Hour())
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestReservationLockOverlapping(t *testing.T) {
	resourceID := uuid.New()
	start := builder.At(0, 10)
	end := builder.At(0, 13)
	row := builder.NewReservationBuilder().WithResourceID(resourceID).BuildInfra()

	mockQueries := new(MockReservationQueries)
	mockQueries.On("LockOverlappingReservations", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.LockOverlappingReservationsParams) bool {
		return p.ResourceID == resourceID && p.StartAt.Time.Equal(start) && p.EndAt.Time.Equal(end)
	})).Return([]sqlc.LockOverlappingReservationsRow{sqlc.LockOverlappingReservationsRow(row)}, nil)

	repo := NewReservationRepository(mockQueries, nil, builder.Tokyo)
	got, err := repo.LockOverlapping(context.Background(), resourceID, start, end)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, row.ID, got[0].ID())
	mockQueries.AssertExpectations(t)
}

func TestReservationCreate(t *testing.T) {
	tests := []struct {
		name      string
		mockError error
		wantKind  infra.RepositoryErrorKind
	}{
		{name: "success"},
		{name: "exclusion violation", mockError: &pgconn.PgError{Code: "23P01", ConstraintName: "reservations_no_overlap"}, wantKind: infra.KindConflict},
		{name: "duplicate key", mockError: &pgconn.PgError{Code: "23505"}, wantKind: infra.KindDuplicateKey},
		{name: "unknown resource", mockError: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := builder.NewReservationBuilder().WithDuration(3).BuildDomain()

			mockQueries := new(MockReservationQueries)
			mockQueries.On("CreateReservation", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.CreateReservationParams) bool {
				return p.ID == res.ID() && p.TotalPrice == "6000.00" && p.EndAt.Time.Equal(res.EndAt()) && p.Status == "held"
			})).Return(tt.mockError)

			repo := NewReservationRepository(mockQueries, nil, builder.Tokyo)
			err := repo.Create(context.Background(), res)

			if tt.wantKind != "" {
				assert.True(t, infra.IsKind(err, tt.wantKind), "got %v", err)
			} else {
				assert.NoError(t, err)
			}
			mockQueries.AssertExpectations(t)
		})
	}
}

func TestReservationSave(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		res := builder.NewReservationBuilder().AsConfirmed("PAY-9").BuildDomain()

		mockQueries := new(MockReservationQueries)
		mockQueries.On("UpdateReservationState", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.UpdateReservationStateParams) bool {
			return p.Status == "confirmed" && p.PaymentReference.String == "PAY-9" && !p.HoldExpiresAt.Valid
		})).Return(int64(1), nil)

		repo := NewReservationRepository(mockQueries, nil, builder.Tokyo)
		assert.NoError(t, repo.Save(context.Background(), res))
		mockQueries.AssertExpectations(t)
	})

	t.Run("no rows affected", func(t *testing.T) {
		mockQueries := new(MockReservationQueries)
		mockQueries.On("UpdateReservationState", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)

		repo := NewReservationRepository(mockQueries, nil, builder.Tokyo)
		err := repo.Save(context.Background(), builder.NewReservationBuilder().BuildDomain())
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})
}

func TestReservationCancelReleasable(t *testing.T) {
	now := builder.BaseNow.Add(time.Hour)
	row := builder.NewReservationBuilder().AsCancelled().BuildInfra()

	t.Run("success", func(t *testing.T) {
		mockQueries := new(MockReservationQueries)
		mockQueries.On("CancelReleasableReservations", mock.Anything, mock.Anything, mock.MatchedBy(func(ts pgtype.Timestamptz) bool {
			return ts.Time.Equal(now)
		})).Return([]sqlc.CancelReleasableReservationsRow{sqlc.CancelReleasableReservationsRow(row)}, nil)

		repo := NewReservationRepository(mockQueries, nil, builder.Tokyo)
		got, err := repo.CancelReleasable(context.Background(), now)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, reservation.StatusCancelled, got[0].Status())
	})

	t.Run("database error", func(t *testing.T) {
		mockQueries := new(MockReservationQueries)
		mockQueries.On("CancelReleasableReservations", mock.Anything, mock.Anything, mock.Anything).
			Return([]sqlc.CancelReleasableReservationsRow(nil), assert.AnError)

		repo := NewReservationRepository(mockQueries, nil, builder.Tokyo)
		_, err := repo.CancelReleasable(context.Background(), now)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

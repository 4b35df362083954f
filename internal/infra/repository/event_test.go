//go:build unit

package repository

import (
	"context"
	"testing"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/infra"
	sqlc "court-reservation/internal/infra/sqlc/generated"
	"court-reservation/internal/pkg/pgconv"
	"court-reservation/internal/usecase/shared"
	"court-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEventQueries struct {
	mock.Mock
}

func (m *MockEventQueries) CreateReservationEvent(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateReservationEventParams) error {
	args := m.Called(ctx, db, arg)
	return args.Error(0)
}

func (m *MockEventQueries) LockUnpublishedReservationEvents(ctx context.Context, db sqlc.DBTX, limit int32) ([]sqlc.ReservationEvents, error) {
	args := m.Called(ctx, db, limit)
	return args.Get(0).([]sqlc.ReservationEvents), args.Error(1)
}

func (m *MockEventQueries) MarkReservationEventsPublished(ctx context.Context, db sqlc.DBTX, arg sqlc.MarkReservationEventsPublishedParams) (int64, error) {
	args := m.Called(ctx, db, arg)
	return args.Get(0).(int64), args.Error(1)
}

func TestEventAppend(t *testing.T) {
	event := shared.Event{
		ReservationID: uuid.New(),
		Kind:          reservation.EventHeld,
		Payload:       []byte(`{"status":"held"}`),
		CreatedAt:     builder.BaseNow,
	}

	t.Run("success", func(t *testing.T) {
		mockQueries := new(MockEventQueries)
		mockQueries.On("CreateReservationEvent", mock.Anything, mock.Anything, sqlc.CreateReservationEventParams{
			ReservationID: event.ReservationID,
			Kind:          "reservation.held",
			Payload:       event.Payload,
			CreatedAt:     pgconv.TimeToPgtype(builder.BaseNow),
		}).Return(nil)

		repo := NewEventRepository(mockQueries, nil)
		assert.NoError(t, repo.Append(context.Background(), event))
		mockQueries.AssertExpectations(t)
	})

	t.Run("database error", func(t *testing.T) {
		mockQueries := new(MockEventQueries)
		mockQueries.On("CreateReservationEvent", mock.Anything, mock.Anything, mock.Anything).Return(assert.AnError)

		repo := NewEventRepository(mockQueries, nil)
		err := repo.Append(context.Background(), event)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

func TestEventLockUnpublished(t *testing.T) {
	t.Run("zero limit skips the query", func(t *testing.T) {
		mockQueries := new(MockEventQueries)
		repo := NewEventRepository(mockQueries, nil)

		events, err := repo.LockUnpublished(context.Background(), 0)
		require.NoError(t, err)
		assert.Empty(t, events)
		mockQueries.AssertNotCalled(t, "LockUnpublishedReservationEvents", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("maps rows", func(t *testing.T) {
		row := sqlc.ReservationEvents{
			ID:            42,
			ReservationID: uuid.New(),
			Kind:          "reservation.cancelled",
			Payload:       []byte(`{}`),
			CreatedAt:     pgconv.TimeToPgtype(builder.BaseNow),
		}
		mockQueries := new(MockEventQueries)
		mockQueries.On("LockUnpublishedReservationEvents", mock.Anything, mock.Anything, int32(50)).
			Return([]sqlc.ReservationEvents{row}, nil)

		repo := NewEventRepository(mockQueries, nil)
		events, err := repo.LockUnpublished(context.Background(), 50)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, int64(42), events[0].ID)
		assert.Equal(t, reservation.EventCancelled, events[0].Kind)
	})
}

func TestEventMarkPublished(t *testing.T) {
	t.Run("empty ids is a no-op", func(t *testing.T) {
		mockQueries := new(MockEventQueries)
		repo := NewEventRepository(mockQueries, nil)
		assert.NoError(t, repo.MarkPublished(context.Background(), nil, builder.BaseNow))
		mockQueries.AssertNotCalled(t, "MarkReservationEventsPublished", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("marks ids", func(t *testing.T) {
		mockQueries := new(MockEventQueries)
		mockQueries.On("MarkReservationEventsPublished", mock.Anything, mock.Anything, mock.MatchedBy(func(p sqlc.MarkReservationEventsPublishedParams) bool {
			return len(p.Ids) == 2 && p.PublishedAt.Time.Equal(builder.BaseNow)
		})).Return(int64(2), nil)

		repo := NewEventRepository(mockQueries, nil)
		assert.NoError(t, repo.MarkPublished(context.Background(), []int64{1, 2}, builder.BaseNow))
		mockQueries.AssertExpectations(t)
	})
}

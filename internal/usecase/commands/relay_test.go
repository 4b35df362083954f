//go:build unit

package commands_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"court-reservation/internal/usecase/commands"
	"court-reservation/internal/usecase/shared"
	"court-reservation/tests/common/builder"
	sharedmock "court-reservation/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestRelayEvents(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, holds int) (*fixture, *sharedmock.MockEventPublisher, commands.EventRelay) {
		t.Helper()
		f := newFixture(t)
		for i := range holds {
			_, err := f.locks.Acquire(ctx, f.acquireParams(builder.At(0, 10+i), 1))
			require.NoError(t, err)
		}
		publisher := sharedmock.NewMockEventPublisher(gomock.NewController(t))
		relay := commands.NewEventRelay(f.store, publisher, f.clock, slog.New(slog.NewTextHandler(io.Discard, nil)))
		return f, publisher, relay
	}

	t.Run("未送信イベントを送信して既読化", func(t *testing.T) {
		f, publisher, relay := setup(t, 3)

		publisher.EXPECT().Publish(gomock.Any(), gomock.Len(2)).Return(nil)
		publisher.EXPECT().Publish(gomock.Any(), gomock.Len(1)).Return(nil)

		n, err := relay.RelayEvents(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 1, f.store.Unpublished())

		n, err = relay.RelayEvents(ctx, 2)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		assert.Zero(t, f.store.Unpublished())

		n, err = relay.RelayEvents(ctx, 2)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("送信失敗は残す", func(t *testing.T) {
		f, publisher, relay := setup(t, 2)

		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(assert.AnError)

		n, err := relay.RelayEvents(ctx, 10)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Zero(t, n)
		assert.Equal(t, 2, f.store.Unpublished())
	})

	t.Run("イベントの順序を保つ", func(t *testing.T) {
		f, publisher, relay := setup(t, 3)
		want := f.store.Events()

		publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, events []shared.Event) error {
				assert.Equal(t, want, events)
				return nil
			})

		_, err := relay.RelayEvents(ctx, 10)
		require.NoError(t, err)
	})
}

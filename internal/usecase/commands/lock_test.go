//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/pkg/errs"
	"court-reservation/internal/usecase/commands"
	"court-reservation/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquire(t *testing.T) {
	ctx := context.Background()

	t.Run("空き枠を仮押さえ", func(t *testing.T) {
		f := newFixture(t)

		held, err := f.locks.Acquire(ctx, f.acquireParams(builder.At(0, 14), 2))
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusHeld, held.Status())
		assert.Equal(t, "5000.00", held.TotalPrice().String())
		assert.Equal(t, builder.BaseNow.Add(testPolicy.HoldTTL), *held.HoldExpiresAt())

		stored, ok := f.store.Reservation(held.ID())
		require.True(t, ok)
		assert.Equal(t, reservation.StatusHeld, stored.Status())
		assert.Equal(t, []reservation.EventKind{reservation.EventHeld}, f.store.EventKinds())
	})

	t.Run("重なる確定予約があれば競合", func(t *testing.T) {
		f := newFixture(t)
		f.seed(builder.NewReservationBuilder().WithStart(builder.At(0, 16)).WithDuration(4).AsConfirmed("PAY-1"))

		_, err := f.locks.Acquire(ctx, f.acquireParams(builder.At(0, 14), 3))
		assert.True(t, errs.Is(err, commands.ErrSlotConflict))
		assert.True(t, errs.Is(err, errs.ErrConflict))
		assert.Empty(t, f.store.Events())
		assert.Len(t, f.store.Reservations(f.court.ID()), 1)
	})

	t.Run("有効な仮押さえとも競合", func(t *testing.T) {
		f := newFixture(t)
		f.seed(builder.NewReservationBuilder().WithStart(builder.At(0, 15)).WithDuration(1))

		_, err := f.locks.Acquire(ctx, f.acquireParams(builder.At(0, 14), 2))
		assert.True(t, errs.Is(err, commands.ErrSlotConflict))
	})

	t.Run("隣接する枠はOK", func(t *testing.T) {
		f := newFixture(t)
		f.seed(builder.NewReservationBuilder().WithStart(builder.At(0, 16)).WithDuration(2).AsConfirmed("PAY-1"))

		_, err := f.locks.Acquire(ctx, f.acquireParams(builder.At(0, 14), 2))
		assert.NoError(t, err)
		_, err = f.locks.Acquire(ctx, f.acquireParams(builder.At(0, 18), 2))
		assert.NoError(t, err)
	})

	t.Run("キャンセル済みは占有しない", func(t *testing.T) {
		f := newFixture(t)
		f.seed(builder.NewReservationBuilder().WithStart(builder.At(0, 14)).AsCancelled())

		_, err := f.locks.Acquire(ctx, f.acquireParams(builder.At(0, 14), 2))
		assert.NoError(t, err)
	})

	t.Run("期限切れの仮押さえは解放して取得", func(t *testing.T) {
		f := newFixture(t)
		stale := f.seed(builder.NewReservationBuilder().WithStart(builder.At(0, 14)).WithDuration(2))
		f.clock.Add(testPolicy.HoldTTL + time.Second)

		held, err := f.locks.Acquire(ctx, f.acquireParams(builder.At(0, 15), 1))
		require.NoError(t, err)

		old, _ := f.store.Reservation(stale.ID())
		assert.Equal(t, reservation.StatusCancelled, old.Status())
		assert.Equal(t, reservation.StatusHeld, held.Status())
		assert.Equal(t, []reservation.EventKind{reservation.EventCancelled, reservation.EventHeld}, f.store.EventKinds())
	})

	t.Run("存在しない施設", func(t *testing.T) {
		f := newFixture(t)
		p := f.acquireParams(builder.At(0, 14), 1)
		p.ResourceID = uuid.New()

		_, err := f.locks.Acquire(ctx, p)
		assert.True(t, errs.Is(err, commands.ErrResourceNotFound))
		assert.True(t, errs.Is(err, errs.ErrNotFound))
	})

	t.Run("営業時間外は検証エラー", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.locks.Acquire(ctx, f.acquireParams(builder.At(0, 21), 2))
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("過去の開始は検証エラー", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.locks.Acquire(ctx, f.acquireParams(builder.At(0, 8), 1))
		assert.True(t, errs.Is(err, errs.ErrValidation))
	})

	t.Run("同時取得は一件のみ成功", func(t *testing.T) {
		f := newFixture(t)
		const acquirers = 16

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			successes int
			conflicts int
		)
		for i := range acquirers {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				// every run covers 15:00
				start := builder.At(0, 12+i%4)
				_, err := f.locks.Acquire(ctx, f.acquireParams(start, 4-i%4))
				mu.Lock()
				defer mu.Unlock()
				switch {
				case err == nil:
					successes++
				case errs.Is(err, commands.ErrSlotConflict):
					conflicts++
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 1, successes)
		assert.Equal(t, acquirers-1, conflicts)

		occupying := 0
		for _, r := range f.store.Reservations(f.court.ID()) {
			if r.IsOccupying() {
				occupying++
			}
		}
		assert.Equal(t, 1, occupying)
	})
}

func TestReleaseExpired(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	active := f.seed(builder.NewReservationBuilder().WithStart(builder.At(0, 10)).ExpiringAt(builder.BaseNow.Add(time.Hour)))
	lapsed := f.seed(builder.NewReservationBuilder().WithStart(builder.At(0, 12)))
	cooled := f.seed(builder.NewReservationBuilder().WithStart(builder.At(0, 14)).
		ExpiringAt(builder.BaseNow.Add(time.Hour)).
		WithCooldownUntil(builder.BaseNow.Add(30 * time.Second)))
	confirmed := f.seed(builder.NewReservationBuilder().WithStart(builder.At(0, 16)).AsConfirmed("PAY-1"))
	// hold runs out while the cooldown is still running
	lapsedWhilePaying := f.seed(builder.NewReservationBuilder().WithStart(builder.At(0, 18)).
		WithCooldownUntil(builder.BaseNow.Add(time.Hour)))

	f.clock.Add(testPolicy.HoldTTL + time.Second)

	released, err := f.locks.ReleaseExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, released)

	status := func(id uuid.UUID) reservation.Status {
		r, ok := f.store.Reservation(id)
		require.True(t, ok)
		return r.Status()
	}
	assert.Equal(t, reservation.StatusHeld, status(active.ID()))
	assert.Equal(t, reservation.StatusCancelled, status(lapsed.ID()))
	assert.Equal(t, reservation.StatusCancelled, status(cooled.ID()))
	assert.Equal(t, reservation.StatusConfirmed, status(confirmed.ID()))
	assert.Equal(t, reservation.StatusCancelled, status(lapsedWhilePaying.ID()))
	assert.Equal(t, []reservation.EventKind{
		reservation.EventCancelled, reservation.EventCancelled, reservation.EventCancelled,
	}, f.store.EventKinds())

	t.Run("二度目は何もしない", func(t *testing.T) {
		again, err := f.locks.ReleaseExpired(ctx)
		require.NoError(t, err)
		assert.Zero(t, again)
		assert.Len(t, f.store.Events(), 3)
	})
}

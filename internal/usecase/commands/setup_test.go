//go:build unit

package commands_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/domain/resource"
	"court-reservation/internal/pkg/clock"
	"court-reservation/internal/usecase/commands"
	"court-reservation/tests/common/builder"
	"court-reservation/tests/common/memstore"
	sharedmock "court-reservation/tests/mock/shared"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testPolicy = commands.Policy{
	HoldTTL:         10 * time.Minute,
	PaymentCooldown: 30 * time.Second,
	Location:        builder.Tokyo,
}

type fixture struct {
	store    *memstore.Store
	clock    *clock.MockClock
	gateway  *sharedmock.MockPaymentGateway
	locks    commands.LockManager
	commands commands.ReservationCommands
	court    *resource.Resource
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	store := memstore.New()
	clk := clock.NewMockClock(builder.BaseNow)
	gateway := sharedmock.NewMockPaymentGateway(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	court, err := builder.NewResourceBuilder().WithHourlyPrice("2500.00").BuildDomain()
	require.NoError(t, err)
	store.PutResource(court)

	locks := commands.NewLockManager(store, clk, testPolicy, logger)
	return &fixture{
		store:    store,
		clock:    clk,
		gateway:  gateway,
		locks:    locks,
		commands: commands.NewReservationCommands(store, locks, gateway, clk, testPolicy, logger),
		court:    court,
	}
}

// seed stores a reservation on the fixture court.
func (f *fixture) seed(b *builder.ReservationBuilder) *reservation.Reservation {
	r := b.WithResourceID(f.court.ID()).BuildDomain()
	f.store.PutReservation(r)
	return r
}

func (f *fixture) acquireParams(start time.Time, units int) commands.AcquireParams {
	return commands.AcquireParams{
		ResourceID:    f.court.ID(),
		HolderID:      builder.NewReservationBuilder().HolderID,
		StartAt:       start,
		DurationUnits: units,
		UnitPrice:     reservation.MustMoney(f.court.HourlyPrice().String()),
	}
}

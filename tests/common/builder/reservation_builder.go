//go:build unit || e2e

package builder

import (
	"time"

	reqdto "court-reservation/internal/handler/dto/request"
	"court-reservation/internal/domain/reservation"
	sqlc "court-reservation/internal/infra/sqlc/generated"
	"court-reservation/internal/pkg/pgconv"
	"court-reservation/internal/usecase/queries"

	"github.com/google/uuid"
)

// Tokyo is the schedule timezone the fixtures are written in.
var Tokyo = time.FixedZone("Asia/Tokyo", 9*60*60)

// BaseNow is the clock reading builders assume: 2030-01-15 09:00 Tokyo.
var BaseNow = time.Date(2030, 1, 15, 9, 0, 0, 0, Tokyo)

// At returns hour:00 on the BaseNow day, or the following days with dayOffset.
func At(dayOffset, hour int) time.Time {
	return time.Date(BaseNow.Year(), BaseNow.Month(), BaseNow.Day()+dayOffset, hour, 0, 0, 0, Tokyo)
}

type ReservationBuilder struct {
	ID                   uuid.UUID
	ResourceID           uuid.UUID
	ResourceName         string
	HolderID             uuid.UUID
	StartAt              time.Time
	DurationUnits        int
	UnitPrice            string
	Status               reservation.Status
	PaymentReference     *string
	HoldExpiresAt        *time.Time
	PaymentCooldownUntil *time.Time
	CreatedAt            time.Time
}

// NewReservationBuilder starts from a fresh two-hour hold at 10:00 on the
// BaseNow day that expires ten minutes after BaseNow.
func NewReservationBuilder() *ReservationBuilder {
	expires := BaseNow.Add(reservation.DefaultHoldTTL)
	return &ReservationBuilder{
		ID:            uuid.New(),
		ResourceID:    uuid.New(),
		ResourceName:  "Court A",
		HolderID:      uuid.New(),
		StartAt:       At(0, 10),
		DurationUnits: 2,
		UnitPrice:     "2000.00",
		Status:        reservation.StatusHeld,
		HoldExpiresAt: &expires,
		CreatedAt:     BaseNow,
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) WithResourceID(id uuid.UUID) *ReservationBuilder {
	b.ResourceID = id
	return b
}

func (b *ReservationBuilder) WithHolderID(id uuid.UUID) *ReservationBuilder {
	b.HolderID = id
	return b
}

func (b *ReservationBuilder) WithStart(start time.Time) *ReservationBuilder {
	b.StartAt = start
	return b
}

func (b *ReservationBuilder) WithDuration(units int) *ReservationBuilder {
	b.DurationUnits = units
	return b
}

func (b *ReservationBuilder) WithUnitPrice(price string) *ReservationBuilder {
	b.UnitPrice = price
	return b
}

func (b *ReservationBuilder) ExpiringAt(t time.Time) *ReservationBuilder {
	b.HoldExpiresAt = &t
	return b
}

func (b *ReservationBuilder) WithCooldownUntil(t time.Time) *ReservationBuilder {
	b.PaymentCooldownUntil = &t
	return b
}

func (b *ReservationBuilder) AsConfirmed(paymentReference string) *ReservationBuilder {
	b.Status = reservation.StatusConfirmed
	b.PaymentReference = &paymentReference
	b.HoldExpiresAt = nil
	b.PaymentCooldownUntil = nil
	return b
}

func (b *ReservationBuilder) AsCancelled() *ReservationBuilder {
	b.Status = reservation.StatusCancelled
	b.HoldExpiresAt = nil
	b.PaymentCooldownUntil = nil
	return b
}

func (b *ReservationBuilder) TotalPrice() reservation.Money {
	return reservation.MustMoney(b.UnitPrice).Times(b.DurationUnits)
}

// Build methods
func (b *ReservationBuilder) BuildDomain() *reservation.Reservation {
	return reservation.Reconstruct(
		b.ID,
		b.ResourceID,
		b.HolderID,
		b.StartAt,
		b.DurationUnits,
		b.TotalPrice(),
		b.Status,
		b.PaymentReference,
		b.HoldExpiresAt,
		b.PaymentCooldownUntil,
		b.CreatedAt,
		b.CreatedAt,
	)
}

func (b *ReservationBuilder) BuildInfra() sqlc.LockReservationByIDRow {
	return sqlc.LockReservationByIDRow{
		ID:                   b.ID,
		ResourceID:           b.ResourceID,
		HolderID:             b.HolderID,
		StartAt:              pgconv.TimeToPgtype(b.StartAt),
		DurationUnits:        int32(b.DurationUnits), // #nosec G115 -- test fixture
		TotalPrice:           b.TotalPrice().String(),
		Status:               b.Status.String(),
		PaymentReference:     pgconv.StringPtrToPgtype(b.PaymentReference),
		HoldExpiresAt:        pgconv.TimePtrToPgtype(b.HoldExpiresAt),
		PaymentCooldownUntil: pgconv.TimePtrToPgtype(b.PaymentCooldownUntil),
		CreatedAt:            pgconv.TimeToPgtype(b.CreatedAt),
		UpdatedAt:            pgconv.TimeToPgtype(b.CreatedAt),
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:                   b.ID,
		ResourceID:           b.ResourceID,
		ResourceName:         b.ResourceName,
		HolderID:             b.HolderID,
		StartAt:              b.StartAt,
		EndAt:                b.StartAt.Add(time.Duration(b.DurationUnits) * time.Hour),
		DurationUnits:        b.DurationUnits,
		TotalPrice:           b.TotalPrice().String(),
		Status:               b.Status.String(),
		PaymentReference:     b.PaymentReference,
		HoldExpiresAt:        b.HoldExpiresAt,
		PaymentCooldownUntil: b.PaymentCooldownUntil,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ResourceID:    b.ResourceID,
		StartAt:       b.StartAt,
		DurationUnits: b.DurationUnits,
	}
}

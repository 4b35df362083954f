//go:build unit || e2e

package builder

import (

	"court-reservation/internal/domain/resource"
	"court-reservation/internal/domain/slot"
	sqlc "court-reservation/internal/infra/sqlc/generated"
	"court-reservation/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type ResourceBuilder struct {
	ID          uuid.UUID
	Name        string
	Description *string
	HourlyPrice string
	Status      resource.Status
	// nil falls back to the default 08:00-22:00
	Opens  *slot.TimeOfDay
	Closes *slot.TimeOfDay
}

func NewResourceBuilder() *ResourceBuilder {
	return &ResourceBuilder{
		ID:          uuid.New(),
		Name:        "Court A",
		HourlyPrice: "2000.00",
		Status:      resource.StatusActive,
	}
}

func (b *ResourceBuilder) With(mutate func(*ResourceBuilder)) *ResourceBuilder {
	mutate(b)
	return b
}

func (b *ResourceBuilder) WithID(id uuid.UUID) *ResourceBuilder {
	b.ID = id
	return b
}

func (b *ResourceBuilder) WithHourlyPrice(price string) *ResourceBuilder {
	b.HourlyPrice = price
	return b
}

// WithHours sets operating hours as whole hours.
func (b *ResourceBuilder) WithHours(opens, closes int) *ResourceBuilder {
	o := slot.MustTimeOfDay(opens, 0)
	c := slot.MustTimeOfDay(closes, 0)
	b.Opens, b.Closes = &o, &c
	return b
}

func (b *ResourceBuilder) AsDisabled() *ResourceBuilder {
	b.Status = resource.StatusDisabled
	return b
}

// Build methods
func (b *ResourceBuilder) BuildDomain() (*resource.Resource, error) {
	hours, err := resource.OperatingHoursOrDefault(b.Opens, b.Closes)
	if err != nil {
		return nil, err
	}
	return resource.Reconstruct(
		b.ID,
		b.Name,
		b.Description,
		decimal.RequireFromString(b.HourlyPrice),
		b.Status,
		hours,
		BaseNow,
		BaseNow,
	), nil
}

func (b *ResourceBuilder) BuildInfra() sqlc.GetResourceByIDRow {
	return sqlc.GetResourceByIDRow{
		ID:          b.ID,
		Name:        b.Name,
		Description: pgconv.StringPtrToPgtype(b.Description),
		HourlyPrice: b.HourlyPrice,
		Status:      b.Status.String(),
		OpensAt:     pgTime(b.Opens),
		ClosesAt:    pgTime(b.Closes),
		CreatedAt:   pgconv.TimeToPgtype(BaseNow),
		UpdatedAt:   pgconv.TimeToPgtype(BaseNow),
	}
}

func pgTime(t *slot.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	minutes := t.Minutes()
	return pgconv.MinutesToPgtime(&minutes)
}


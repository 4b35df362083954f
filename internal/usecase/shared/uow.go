package shared

import (
	"context"
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/domain/resource"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

// Repositories handed out by a Tx are bound to that transaction.
type Tx interface {
	Resources() ResourceRepository
	Reservations() ReservationRepository
	Events() EventRepository
}

type CommandReads interface {
	ResourceByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
}

type ResourceRepository interface {
	// LockByID takes the per-resource row lock every acquirer queues on.
	LockByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
	UpdateStatus(ctx context.Context, res *resource.Resource) error
	CountFutureConfirmed(ctx context.Context, id uuid.UUID, now time.Time) (int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ReservationRepository interface {
	LockByID(ctx context.Context, id uuid.UUID) (*reservation.Reservation, error)
	// LockOverlapping locks held/confirmed rows of the resource intersecting [start, end).
	LockOverlapping(ctx context.Context, resourceID uuid.UUID, start, end time.Time) ([]*reservation.Reservation, error)
	Create(ctx context.Context, res *reservation.Reservation) error
	Save(ctx context.Context, res *reservation.Reservation) error
	// CancelReleasable cancels every held row whose hold or payment cooldown lapsed before now.
	CancelReleasable(ctx context.Context, now time.Time) ([]*reservation.Reservation, error)
}

type EventRepository interface {
	Append(ctx context.Context, event Event) error
	LockUnpublished(ctx context.Context, limit int) ([]Event, error)
	MarkPublished(ctx context.Context, ids []int64, at time.Time) error
}

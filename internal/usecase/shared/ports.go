package shared

import (
	"context"
	"time"

	"court-reservation/internal/domain/reservation"

	"github.com/google/uuid"
)

//go:generate mockgen -source=ports.go -destination=../../../tests/mock/shared/ports_mock.go -package=sharedmock

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleMember || r == RoleAdmin
}

// Actor is the authenticated caller of a command or query.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Event is an outbox row. ID is zero until stored.
type Event struct {
	ID            int64
	ReservationID uuid.UUID
	Kind          reservation.EventKind
	Payload       []byte
	CreatedAt     time.Time
}

type EventPublisher interface {
	Publish(ctx context.Context, events []Event) error
}

type PaymentDetails struct {
	CardNumber string
	CardExpiry string
	CardCVV    string
}

type ChargeRequest struct {
	ReservationID uuid.UUID
	Amount        reservation.Money
	Details       PaymentDetails
}

// ChargeResult is a decline when Success is false; Message is shown to the holder.
type ChargeResult struct {
	Success   bool
	Reference string
	Message   string
}

type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (ChargeResult, error)
}

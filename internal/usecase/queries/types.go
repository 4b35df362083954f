package queries

import (
	"time"

	"github.com/google/uuid"
)

// ReservationView is the read model behind GET /api/reservations/:id.
type ReservationView struct {
	ID                   uuid.UUID  `json:"id"`
	ResourceID           uuid.UUID  `json:"resource_id"`
	ResourceName         string     `json:"resource_name"`
	HolderID             uuid.UUID  `json:"holder_id"`
	StartAt              time.Time  `json:"start_at"`
	EndAt                time.Time  `json:"end_at"`
	DurationUnits        int        `json:"duration_units"`
	TotalPrice           string     `json:"total_price"`
	Status               string     `json:"status"`
	PaymentReference     *string    `json:"payment_reference,omitempty"`
	HoldExpiresAt        *time.Time `json:"hold_expires_at,omitempty"`
	PaymentCooldownUntil *time.Time `json:"payment_cooldown_until,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// AvailabilityView lists "HH:MM" labels; every list is sorted and unique.
type AvailabilityView struct {
	ResourceID uuid.UUID `json:"resource_id"`
	Date       string    `json:"date"`
	Available  []string  `json:"available"`
	Held       []string  `json:"held"`
	Confirmed  []string  `json:"confirmed"`
}

type DurationsView struct {
	ResourceID  uuid.UUID `json:"resource_id"`
	StartAt     time.Time `json:"start_at"`
	Durations   []int     `json:"durations"`
	MaxDuration int       `json:"max_duration"`
	Reason      *string   `json:"reason"`
}

package response

import (
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID                   uuid.UUID  `json:"id"`
	ResourceID           uuid.UUID  `json:"resource_id"`
	ResourceName         string     `json:"resource_name,omitempty"`
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

func FromReservationView(view *queries.ReservationView) (*ReservationResponse, error) {
	var resp ReservationResponse
	if err := copier.Copy(&resp, view); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FromReservation renders a command result, which has no joined resource name.
func FromReservation(r *reservation.Reservation) *ReservationResponse {
	return &ReservationResponse{
		ID:                   r.ID(),
		ResourceID:           r.ResourceID(),
		HolderID:             r.HolderID(),
		StartAt:              r.StartAt(),
		EndAt:                r.EndAt(),
		DurationUnits:        r.DurationUnits(),
		TotalPrice:           r.TotalPrice().String(),
		Status:               r.Status().String(),
		PaymentReference:     r.PaymentReference(),
		HoldExpiresAt:        r.HoldExpiresAt(),
		PaymentCooldownUntil: r.PaymentCooldownUntil(),
		CreatedAt:            r.CreatedAt(),
		UpdatedAt:            r.UpdatedAt(),
	}
}

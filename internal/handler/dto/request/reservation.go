package request

import (
	"time"

	"court-reservation/internal/usecase/commands"
	"court-reservation/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ResourceID    uuid.UUID `json:"resource_id" binding:"required"`
	StartAt       time.Time `json:"start_at" binding:"required,hour_aligned"`
	DurationUnits int       `json:"duration_units" binding:"required,min=1,max=8"`
}

func (r CreateReservationRequest) ToInput(holderID uuid.UUID) commands.HoldReservationInput {
	return commands.HoldReservationInput{
		ResourceID:    r.ResourceID,
		HolderID:      holderID,
		StartAt:       r.StartAt,
		DurationUnits: r.DurationUnits,
	}
}

type ConfirmReservationRequest struct {
	CardNumber string `json:"card_number" binding:"required,numeric,min=12,max=19"`
	CardExpiry string `json:"card_expiry" binding:"required,len=5"`
	CardCVV    string `json:"card_cvv" binding:"required,numeric,min=3,max=4"`
}

func (r ConfirmReservationRequest) ToInput(reservationID, holderID uuid.UUID) commands.ConfirmReservationInput {
	return commands.ConfirmReservationInput{
		ReservationID: reservationID,
		HolderID:      holderID,
		Payment: shared.PaymentDetails{
			CardNumber: r.CardNumber,
			CardExpiry: r.CardExpiry,
			CardCVV:    r.CardCVV,
		},
	}
}

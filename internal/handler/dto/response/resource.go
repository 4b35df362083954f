package response

import (
	"time"

	"court-reservation/internal/domain/resource"

	"github.com/google/uuid"
)

type ResourceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	HourlyPrice string    `json:"hourly_price"`
	Status      string    `json:"status"`
	OpensAt     string    `json:"opens_at"`
	ClosesAt    string    `json:"closes_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromResource(r *resource.Resource) *ResourceResponse {
	return &ResourceResponse{
		ID:          r.ID(),
		Name:        r.Name(),
		Description: r.Description(),
		HourlyPrice: r.HourlyPrice().StringFixed(2),
		Status:      r.Status().String(),
		OpensAt:     r.OperatingHours().Opens().String(),
		ClosesAt:    r.OperatingHours().Closes().String(),
		UpdatedAt:   r.UpdatedAt(),
	}
}

type ReleaseExpiredResponse struct {
	Released int `json:"released"`
}

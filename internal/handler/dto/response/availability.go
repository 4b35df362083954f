package response

import (
	"time"

	"court-reservation/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AvailabilityResponse struct {
	ResourceID uuid.UUID `json:"resource_id"`
	Date       string    `json:"date"`
	Available  []string  `json:"available"`
	Held       []string  `json:"held"`
	Confirmed  []string  `json:"confirmed"`
}

type DurationsResponse struct {
	ResourceID  uuid.UUID `json:"resource_id"`
	StartAt     time.Time `json:"start_at"`
	Durations   []int     `json:"durations"`
	MaxDuration int       `json:"max_duration"`
	Reason      *string   `json:"reason"`
}

func FromAvailabilityView(view *queries.AvailabilityView) (*AvailabilityResponse, error) {
	var resp AvailabilityResponse
	if err := copier.CopyWithOption(&resp, view, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	resp.Available = nonNil(resp.Available)
	resp.Held = nonNil(resp.Held)
	resp.Confirmed = nonNil(resp.Confirmed)
	return &resp, nil
}

func FromDurationsView(view *queries.DurationsView) (*DurationsResponse, error) {
	var resp DurationsResponse
	if err := copier.CopyWithOption(&resp, view, copier.Option{DeepCopy: true}); err != nil {
		return nil, err
	}
	resp.Durations = nonNil(resp.Durations)
	return &resp, nil
}

// empty lists render as [] rather than null
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

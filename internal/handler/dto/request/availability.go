package request

import "time"

type AvailabilityQuery struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// Start is RFC3339; its offset is honoured, the calendar day is then taken
// in the schedule timezone.
type DurationsQuery struct {
	Start time.Time `form:"start" binding:"required,hour_aligned"`
}

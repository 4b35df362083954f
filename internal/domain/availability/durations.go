package availability

import (
	"fmt"
	"time"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/domain/resource"
	"court-reservation/internal/domain/slot"
)

type StopKind string

const (
	StopNone         StopKind = ""
	StopConflict     StopKind = "conflict"
	StopClosing      StopKind = "closing"
	StopOutsideHours StopKind = "outside_hours"
)

const unavailableReason = "This time slot is not available for booking."

// Resolution is the prefix-closed list of legal durations from a start
// instant, plus why the scan stopped.
type Resolution struct {
	Durations []int
	Stop      StopKind
	// StopAt is the failing unit for a conflict, or closing time.
	StopAt time.Time
}

// ResolveDurations walks d = 1..8 and stops at the first duration that runs
// past closing or touches an unavailable unit.
func ResolveDurations(start time.Time, hours resource.OperatingHours, unavailable Set) Resolution {
	res := Resolution{Durations: []int{}}

	if start.Before(hours.OpensOn(start)) {
		res.Stop = StopOutsideHours
		res.StopAt = start
		return res
	}

	closesAt := hours.ClosesOn(start)
	for d := reservation.MinDurationUnits; d <= reservation.MaxDurationUnits; d++ {
		end := start.Add(time.Duration(d) * slot.Unit)
		if end.After(closesAt) {
			res.Stop = StopClosing
			res.StopAt = closesAt
			return res
		}
		// units 0..d-2 were checked on earlier iterations
		unit := start.Add(time.Duration(d-1) * slot.Unit)
		if unavailable.Contains(slot.LabelOf(unit)) {
			res.Stop = StopConflict
			res.StopAt = unit
			return res
		}
		res.Durations = append(res.Durations, d)
	}
	return res
}

func (r Resolution) Max() int {
	if len(r.Durations) == 0 {
		return 0
	}
	return r.Durations[len(r.Durations)-1]
}

// Reason explains a short run; nil when the full eight hours are available.
func (r Resolution) Reason() *string {
	maxDuration := r.Max()
	var reason string
	switch {
	case maxDuration >= reservation.MaxDurationUnits:
		return nil
	case maxDuration == 0:
		reason = unavailableReason
	case r.Stop == StopClosing:
		reason = fmt.Sprintf("%d+ hours runs past closing time at %s", maxDuration+1, slot.LabelOf(r.StopAt))
	default:
		reason = fmt.Sprintf("%d+ hours conflicts with an existing reservation at %s", maxDuration+1, slot.LabelOf(r.StopAt))
	}
	return &reason
}

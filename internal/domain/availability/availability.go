// Package availability classifies schedule units and resolves bookable durations.
package availability

import (
	"slices"

	"court-reservation/internal/domain/reservation"
	"court-reservation/internal/domain/slot"
)

// Availability partitions a day's units. Held and Confirmed may include units
// that spill past the grid; Available never does.
type Availability struct {
	Available []slot.Label
	Held      []slot.Label
	Confirmed []slot.Label
}

// Compute classifies every grid unit against the occupying reservations.
func Compute(grid []slot.Label, reservations []*reservation.Reservation) Availability {
	held := make(map[slot.Label]struct{})
	confirmed := make(map[slot.Label]struct{})

	for _, r := range reservations {
		var target map[slot.Label]struct{}
		switch r.Status() {
		case reservation.StatusHeld:
			target = held
		case reservation.StatusConfirmed:
			target = confirmed
		default:
			continue
		}
		for _, label := range r.OccupiedUnits() {
			target[label] = struct{}{}
		}
	}

	// a unit claimed by both is reported once, as confirmed
	for label := range confirmed {
		delete(held, label)
	}

	available := make([]slot.Label, 0, len(grid))
	seen := make(map[slot.Label]struct{}, len(grid))
	for _, label := range grid {
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		if _, ok := held[label]; ok {
			continue
		}
		if _, ok := confirmed[label]; ok {
			continue
		}
		available = append(available, label)
	}
	slices.Sort(available)

	return Availability{
		Available: available,
		Held:      sortedLabels(held),
		Confirmed: sortedLabels(confirmed),
	}
}

// Unavailable is held ∪ confirmed.
func (a Availability) Unavailable() Set {
	set := make(Set, len(a.Held)+len(a.Confirmed))
	for _, l := range a.Held {
		set[l] = struct{}{}
	}
	for _, l := range a.Confirmed {
		set[l] = struct{}{}
	}
	return set
}

type Set map[slot.Label]struct{}

func (s Set) Contains(l slot.Label) bool {
	_, ok := s[l]
	return ok
}

func sortedLabels(set map[slot.Label]struct{}) []slot.Label {
	out := make([]slot.Label, 0, len(set))
	for l := range set {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

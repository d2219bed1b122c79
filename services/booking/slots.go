package booking

import (
	"time"

	"branchbook/models"
)

// AvailableSlots returns the slot boundaries of day that start strictly after
// now and are not among booked, in ascending order. It has no side effects,
// so equal inputs always produce equal output.
func AvailableSlots(branch models.Branch, day, now time.Time, booked []time.Time) []time.Time {
	taken := make(map[int64]struct{}, len(booked))
	for _, b := range booked {
		taken[b.UnixNano()] = struct{}{}
	}

	slots := []time.Time{}
	for _, t := range SlotBoundaries(branch, day) {
		if !t.After(now) {
			continue
		}
		if _, ok := taken[t.UnixNano()]; ok {
			continue
		}
		slots = append(slots, t)
	}
	return slots
}

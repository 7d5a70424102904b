package services

import (
	"sort"
	"time"

	"rental/internal/core/domain/model/kernel"
)

const (
	// MinWindowDays and MaxWindowDays bound how far around the requested
	// period the planner searches for free slots. Out-of-range requests
	// are clamped silently rather than rejected.
	MinWindowDays = 0
	MaxWindowDays = 7

	// DefaultSlotDuration is the rental length assumed when a caller asks
	// for suggestions without naming an end time.
	DefaultSlotDuration = 3 * time.Hour
)

// SlotPlanner is a domain service that computes free rental slots for a SKU
// from the intervals its occupying orders cover.
//
// Key responsibilities:
//   - Bounding the search window around the requested period
//   - Reducing occupied (buffered) intervals to a merged timeline
//   - Surfacing only the gaps long enough to fit the requested duration
//
// Business rules:
//   - The window never starts in the past: its start is clamped to now
//   - The window extends windowDays days on each side of the request,
//     with windowDays clamped to [MinWindowDays, MaxWindowDays]
//   - Occupied input intervals arrive already inflated by their order's
//     buffer; the planner treats them opaquely
//   - Results are advisory: a suggested slot can be claimed by a racing
//     booking, so callers re-validate by attempting creation
//
// Example usage:
//
//	planner := services.NewSlotPlanner()
//	window := planner.PlanWindow(now, expectedStart, expectedEnd, 5)
//	if window.IsEmpty() {
//	    // nothing to search
//	}
//	slots := planner.FindFreeSlots(occupied, window, expectedEnd.Sub(expectedStart))
type SlotPlanner struct{}

// NewSlotPlanner creates a new SlotPlanner instance.
func NewSlotPlanner() SlotPlanner {
	return SlotPlanner{}
}

// PlanWindow computes the search window around a requested rental period:
// [max(now, expectedStart - windowDays days), expectedEnd + windowDays days).
// windowDays is clamped to [MinWindowDays, MaxWindowDays]. The returned
// window can be empty (End <= Start) when the request lies entirely in the
// past; callers skip the storage read in that case.
func (p SlotPlanner) PlanWindow(
	now time.Time,
	expectedStart time.Time,
	expectedEnd time.Time,
	windowDays int,
) kernel.TimeRange {
	pad := time.Duration(clampWindowDays(windowDays)) * 24 * time.Hour

	windowStart := expectedStart.Add(-pad)
	if now.After(windowStart) {
		windowStart = now
	}
	windowEnd := expectedEnd.Add(pad)

	return kernel.NewTimeRange(windowStart, windowEnd)
}

// FindFreeSlots returns the gaps inside the window that no occupied interval
// covers and that are at least minDuration long.
//
// Algorithm:
//   - Discard occupied intervals that do not intersect the window
//   - Sort the remainder ascending by start and merge overlaps
//   - Complement the merged timeline against the window
//   - Keep gaps with length >= minDuration
//
// The occupied slice is not mutated. An empty window yields no slots.
func (p SlotPlanner) FindFreeSlots(
	occupied []kernel.TimeRange,
	window kernel.TimeRange,
	minDuration time.Duration,
) []kernel.TimeRange {
	if window.IsEmpty() {
		return nil
	}

	relevant := make([]kernel.TimeRange, 0, len(occupied))
	for _, r := range occupied {
		if r.Intersects(window) {
			relevant = append(relevant, r)
		}
	}
	sort.Slice(relevant, func(i, j int) bool {
		return relevant[i].Start().Before(relevant[j].Start())
	})

	gaps := kernel.ComplementTimeRanges(kernel.MergeTimeRanges(relevant), window)

	slots := make([]kernel.TimeRange, 0, len(gaps))
	for _, gap := range gaps {
		if gap.Duration() >= minDuration {
			slots = append(slots, gap)
		}
	}
	return slots
}

// clampWindowDays forces windowDays into [MinWindowDays, MaxWindowDays].
func clampWindowDays(days int) int {
	if days < MinWindowDays {
		return MinWindowDays
	}
	if days > MaxWindowDays {
		return MaxWindowDays
	}
	return days
}

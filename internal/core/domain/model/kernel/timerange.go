package kernel

import (
	"fmt"
	"time"

	"rental/internal/pkg/errs"
)

// TimeRange represents a half-open time interval [Start, End) in UTC.
// TimeRange is an immutable value object used transiently by the scheduling
// engine; it is never persisted. Construction does NOT enforce ordering of
// the endpoints: the scheduling algorithms legitimately build degenerate or
// empty ranges while clipping and merging, so ordering is validated
// separately via ValidateTimeRange where business input requires it.
//
// Example:
//
//	period := kernel.NewTimeRange(start, end)
//	occupied := period.Inflate(3 * time.Hour)
//	fmt.Println(occupied) // [2026-03-01T09:00:00Z, 2026-03-01T17:00:00Z)
type TimeRange struct {
	start time.Time
	end   time.Time
}

// NewTimeRange creates a TimeRange from the given endpoints, normalizing
// both to UTC. No ordering check is performed.
func NewTimeRange(start time.Time, end time.Time) TimeRange {
	return TimeRange{start: start.UTC(), end: end.UTC()}
}

// ValidateTimeRange checks that start is strictly before end.
// Returns a ValidationError otherwise. This is the single ordering check
// applied to all business input carrying a rental period.
func ValidateTimeRange(start time.Time, end time.Time) error {
	if !start.Before(end) {
		return errs.NewValidationError("start_at must be earlier than end_at")
	}
	return nil
}

// Start returns the inclusive lower endpoint in UTC.
func (r TimeRange) Start() time.Time {
	return r.start
}

// End returns the exclusive upper endpoint in UTC.
func (r TimeRange) End() time.Time {
	return r.end
}

// Duration returns End minus Start. Negative for inverted ranges.
func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

// IsEmpty reports whether the range covers no time at all (End <= Start).
func (r TimeRange) IsEmpty() bool {
	return !r.start.Before(r.end)
}

// Inflate widens the range by pad on both ends, returning a new range
// [Start-pad, End+pad). Used to turn a rental period into its occupied
// range by applying the buffer window.
func (r TimeRange) Inflate(pad time.Duration) TimeRange {
	return TimeRange{start: r.start.Add(-pad), end: r.end.Add(pad)}
}

// Intersects reports whether two half-open ranges share any instant.
// Touching endpoints ([a,b) and [b,c)) do not intersect.
func (r TimeRange) Intersects(other TimeRange) bool {
	return r.start.Before(other.end) && other.start.Before(r.end)
}

// IsEqual reports whether both endpoints coincide.
func (r TimeRange) IsEqual(other TimeRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

// String renders the range as "[start, end)" with RFC 3339 endpoints.
func (r TimeRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.start.Format(time.RFC3339), r.end.Format(time.RFC3339))
}

// MergeTimeRanges collapses a sequence of ranges into the minimal ordered
// sequence of non-overlapping ranges. Adjacent or overlapping neighbors
// (current.Start <= last.End) coalesce into [last.Start, max(last.End,
// current.End)).
//
// The input MUST already be sorted ascending by Start; the contract places
// sort responsibility on the caller, and merge correctness is not guaranteed
// for unsorted input. Merging an already-merged sequence returns an equal
// sequence.
//
// Example:
//
//	ranges := []kernel.TimeRange{a, b, c} // sorted by Start
//	merged := kernel.MergeTimeRanges(ranges)
func MergeTimeRanges(ranges []TimeRange) []TimeRange {
	if len(ranges) == 0 {
		return nil
	}

	merged := make([]TimeRange, 0, len(ranges))
	merged = append(merged, ranges[0])

	for _, current := range ranges[1:] {
		last := &merged[len(merged)-1]
		if current.start.After(last.end) {
			merged = append(merged, current)
			continue
		}
		if current.end.After(last.end) {
			last.end = current.end
		}
	}

	return merged
}

// ComplementTimeRanges returns the gaps the merged ranges leave open inside
// the window. A cursor starting at the window's Start walks the blocks left
// to right: when the cursor is strictly before a block's Start, the gap
// [cursor, block.Start) is emitted; the cursor then advances to
// max(cursor, block.End). After the last block the trailing gap up to the
// window's End is emitted if nonempty.
//
// Preconditions: blocks are merged and sorted (see MergeTimeRanges) and every
// block intersects the window; callers filter out disjoint ranges before
// calling. Gap bounds then always stay inside the window.
func ComplementTimeRanges(merged []TimeRange, window TimeRange) []TimeRange {
	gaps := make([]TimeRange, 0, len(merged)+1)
	cursor := window.start

	for _, block := range merged {
		if cursor.Before(block.start) {
			gaps = append(gaps, TimeRange{start: cursor, end: block.start})
		}
		if block.end.After(cursor) {
			cursor = block.end
		}
	}

	if cursor.Before(window.end) {
		gaps = append(gaps, TimeRange{start: cursor, end: window.end})
	}

	return gaps
}

package schedule

import (
	"fmt"
	"slices"
	"time"
)

// Interval is one staffed time window within a single day.
// Intervals are value types: the resolver builds new slices rather than
// editing windows in place.
type Interval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewInterval creates an interval, rejecting degenerate windows (end <= start)
func NewInterval(start, end time.Time) (Interval, error) {
	if !start.Before(end) {
		return Interval{}, fmt.Errorf("degenerate interval: start %s is not before end %s",
			start.Format(time.RFC3339), end.Format(time.RFC3339))
	}
	return Interval{Start: start, End: end}, nil
}

// Resolve merges a raw interval list into canonical coverage: sorted
// ascending by start and pairwise non-overlapping, with the same union as
// the input.
//
// Intervals that merely touch (one ends exactly where the next starts) are
// kept separate: a handoff boundary between shifts is a real gap in
// continuous coverage, not an overlap. Resolve never mutates its input and
// is idempotent.
func Resolve(raw []Interval) []Interval {
	if len(raw) == 0 {
		return []Interval{}
	}

	sorted := make([]Interval, len(raw))
	copy(sorted, raw)
	slices.SortFunc(sorted, func(a, b Interval) int {
		if c := a.Start.Compare(b.Start); c != 0 {
			return c
		}
		return a.End.Compare(b.End)
	})

	merged := make([]Interval, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if next.Start.Before(current.End) {
			// Overlap: extend the running window if needed
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)

	return merged
}

package schedule

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTagDelimiters is the delimiter set used when the caller does not
// configure one. Staff tend to separate course tags with commas, slashes,
// plus signs or ampersands ("CS101 / MATH20", "cs101+cs102").
const DefaultTagDelimiters = ",;/+&"

// TagPolicy configures how a shift title is split into raw course tags
type TagPolicy struct {
	Delimiters string
}

// Tags splits a raw event title into trimmed, non-empty course tags
func (p TagPolicy) Tags(title string) []string {
	delims := p.Delimiters
	if delims == "" {
		delims = DefaultTagDelimiters
	}

	fields := strings.FieldsFunc(title, func(r rune) bool {
		return strings.ContainsRune(delims, r)
	})

	tags := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// Shift is one normalized staffing record derived from a single calendar
// event: where someone worked, on which weekday, over which window, and
// which courses their event title claimed. Read-only after construction.
type Shift struct {
	Location     string
	WeekDay      int // 0=Sunday .. 6=Saturday
	Start        time.Time
	End          time.Time
	CoursesGiven []string
}

// NewShift builds a shift from an event title, its time window and the
// location whose calendar it came from. The weekday is derived from the
// start time; timestamps are assumed to be pre-normalized to one week
// window. Degenerate windows (end <= start) are rejected here so they can
// never reach the resolver. Cancelled events must be filtered out before
// calling this.
//
// A title that yields no tags is valid: the shift simply contributes no
// interval anywhere.
func NewShift(location, title string, start, end time.Time, policy TagPolicy) (Shift, error) {
	if !start.Before(end) {
		return Shift{}, fmt.Errorf("shift at %q: degenerate window: start %s is not before end %s",
			location, start.Format(time.RFC3339), end.Format(time.RFC3339))
	}

	return Shift{
		Location:     location,
		WeekDay:      int(start.Weekday()),
		Start:        start,
		End:          end,
		CoursesGiven: policy.Tags(title),
	}, nil
}

// Interval returns the shift's time window
func (s Shift) Interval() Interval {
	return Interval{Start: s.Start, End: s.End}
}

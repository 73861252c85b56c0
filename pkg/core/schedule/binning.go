package schedule

// MatchThreshold is the minimum score (exclusive) a tag must reach against
// a catalog entry to be binned under that course
const MatchThreshold = 0.9

// DiagnosticKind classifies why a shift tag was dropped during binning
type DiagnosticKind string

const (
	// DiagUnmatchedTag means the tag scored at or below the threshold
	// against every catalog entry
	DiagUnmatchedTag DiagnosticKind = "unmatched_tag"

	// DiagUnknownLocation means the shift's location is not in the
	// configured location set
	DiagUnknownLocation DiagnosticKind = "unknown_location"
)

// Diagnostic records one dropped tag. Drops are expected with noisy
// real-world event titles, so they surface as data rather than errors.
type Diagnostic struct {
	Kind     DiagnosticKind `json:"kind"`
	Tag      string         `json:"tag"`
	Location string         `json:"location"`
	WeekDay  int            `json:"weekDay"`
}

// Bin assigns every shift's interval into its (course, location, weekday)
// cell and returns the populated raw schedule plus diagnostics for every
// dropped tag.
//
// For each raw tag on a shift, the first catalog entry (in catalog order)
// scoring above MatchThreshold wins; catalog order is caller-supplied, so
// the tie-break is deterministic. Tags matching no course and shifts at
// unknown locations are dropped and reported, never raised. Neither the
// catalog nor the shift list is mutated.
//
// The returned schedule is raw: chain Resolve to merge each cell's
// intervals into canonical coverage.
func Bin(catalog []CourseInfo, locations []string, shifts []Shift) (Schedule, []Diagnostic) {
	return BinWithThreshold(catalog, locations, shifts, MatchThreshold)
}

// BinWithThreshold is Bin with a caller-chosen match threshold
func BinWithThreshold(catalog []CourseInfo, locations []string, shifts []Shift, threshold float64) (Schedule, []Diagnostic) {
	skeleton := BuildSkeleton(catalog, locations)
	diagnostics := []Diagnostic{}

	for _, shift := range shifts {
		for _, tag := range shift.CoursesGiven {
			courseIdx := matchCourse(catalog, tag, threshold)
			if courseIdx < 0 {
				diagnostics = append(diagnostics, Diagnostic{
					Kind:     DiagUnmatchedTag,
					Tag:      tag,
					Location: shift.Location,
					WeekDay:  shift.WeekDay,
				})
				continue
			}

			locationIdx := indexOfLocation(skeleton[courseIdx].Locations, shift.Location)
			if locationIdx < 0 {
				diagnostics = append(diagnostics, Diagnostic{
					Kind:     DiagUnknownLocation,
					Tag:      tag,
					Location: shift.Location,
					WeekDay:  shift.WeekDay,
				})
				continue
			}

			day := &skeleton[courseIdx].Locations[locationIdx].Days[shift.WeekDay]
			day.Intervals = append(day.Intervals, shift.Interval())
		}
	}

	return skeleton, diagnostics
}

// matchCourse returns the index of the first catalog entry scoring above
// the threshold for the tag, or -1 when none does
func matchCourse(catalog []CourseInfo, tag string, threshold float64) int {
	for i, course := range catalog {
		if course.MatchScore(tag) > threshold {
			return i
		}
	}
	return -1
}

func indexOfLocation(locations []LocationSchedule, name string) int {
	for i, ls := range locations {
		if ls.Location == name {
			return i
		}
	}
	return -1
}

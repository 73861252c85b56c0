package schedule

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog(abbreviations ...string) []CourseInfo {
	catalog := make([]CourseInfo, 0, len(abbreviations))
	for _, a := range abbreviations {
		catalog = append(catalog, NewCourseInfo(a))
	}
	return catalog
}

func mustShift(t *testing.T, location, title string, start, end time.Time) Shift {
	t.Helper()
	shift, err := NewShift(location, title, start, end, TagPolicy{})
	require.NoError(t, err)
	return shift
}

func TestBuildSkeleton_Invariants(t *testing.T) {
	catalog := testCatalog("CS101", "MATH20", "PHYS1")
	locations := []string{"ARC", "Library"}

	skeleton := BuildSkeleton(catalog, locations)

	require.Len(t, skeleton, len(catalog))
	for i, cs := range skeleton {
		assert.Equal(t, catalog[i], cs.Course, "catalog order preserved")
		require.Len(t, cs.Locations, len(locations))
		for j, ls := range cs.Locations {
			assert.Equal(t, locations[j], ls.Location)
			require.Len(t, ls.Days, DaysPerWeek)
			for d, ds := range ls.Days {
				assert.Equal(t, d, ds.WeekDay)
				assert.Empty(t, ds.Intervals)
				assert.NotNil(t, ds.Intervals)
			}
		}
	}
}

func TestBin_PlacesShiftInMatchingCell(t *testing.T) {
	start := time.Date(2025, 9, 2, 9, 0, 0, 0, time.UTC) // Tuesday (weekday 2)
	end := time.Date(2025, 9, 2, 11, 0, 0, 0, time.UTC)

	result, diagnostics := Bin(
		testCatalog("CS101"),
		[]string{"ARC"},
		[]Shift{mustShift(t, "ARC", "cs 101", start, end)},
	)

	assert.Empty(t, diagnostics)

	course, ok := result.CourseByAbbreviation("CS101")
	require.True(t, ok)
	location, ok := course.LocationByName("ARC")
	require.True(t, ok)

	day, ok := location.Day(2)
	require.True(t, ok)
	assert.Equal(t, []Interval{{Start: start, End: end}}, day.Intervals)

	// Every other cell stays empty
	for d, ds := range location.Days {
		if d == 2 {
			continue
		}
		assert.Empty(t, ds.Intervals)
	}
}

func TestBin_UnmatchedTagDropsWithDiagnostic(t *testing.T) {
	start := time.Date(2025, 9, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	result, diagnostics := Bin(
		testCatalog("CS101"),
		[]string{"ARC"},
		[]Shift{mustShift(t, "ARC", "underwater basket weaving", start, end)},
	)

	require.Len(t, diagnostics, 1)
	assert.Equal(t, DiagUnmatchedTag, diagnostics[0].Kind)
	assert.Equal(t, "underwater basket weaving", diagnostics[0].Tag)
	assert.Equal(t, "ARC", diagnostics[0].Location)

	// No interval anywhere
	for _, cs := range result {
		for _, ls := range cs.Locations {
			for _, ds := range ls.Days {
				assert.Empty(t, ds.Intervals)
			}
		}
	}
}

func TestBin_UnknownLocationDropsWithDiagnostic(t *testing.T) {
	start := time.Date(2025, 9, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	result, diagnostics := Bin(
		testCatalog("CS101"),
		[]string{"ARC"},
		[]Shift{mustShift(t, "Annex", "CS101", start, end)},
	)

	require.Len(t, diagnostics, 1)
	assert.Equal(t, DiagUnknownLocation, diagnostics[0].Kind)
	assert.Equal(t, "CS101", diagnostics[0].Tag)
	assert.Equal(t, "Annex", diagnostics[0].Location)

	for _, cs := range result {
		for _, ls := range cs.Locations {
			for _, ds := range ls.Days {
				assert.Empty(t, ds.Intervals)
			}
		}
	}
}

func TestBin_FirstCatalogMatchWins(t *testing.T) {
	start := time.Date(2025, 9, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	// Both entries score 1.0 against the tag; catalog order decides
	result, diagnostics := Bin(
		testCatalog("CS101", "cs101"),
		[]string{"ARC"},
		[]Shift{mustShift(t, "ARC", "CS 101", start, end)},
	)

	assert.Empty(t, diagnostics)

	first, ok := result.CourseByAbbreviation("CS101")
	require.True(t, ok)
	location, _ := first.LocationByName("ARC")
	day, _ := location.Day(2)
	assert.Len(t, day.Intervals, 1)

	second := result[1]
	location, _ = second.LocationByName("ARC")
	day, _ = location.Day(2)
	assert.Empty(t, day.Intervals)
}

func TestBin_MultiTagShiftLandsInEachCourse(t *testing.T) {
	start := time.Date(2025, 9, 3, 13, 0, 0, 0, time.UTC) // Wednesday
	end := start.Add(2 * time.Hour)

	result, diagnostics := Bin(
		testCatalog("CS101", "MATH20"),
		[]string{"ARC"},
		[]Shift{mustShift(t, "ARC", "CS101 / MATH20", start, end)},
	)

	assert.Empty(t, diagnostics)

	for _, abbreviation := range []string{"CS101", "MATH20"} {
		course, ok := result.CourseByAbbreviation(abbreviation)
		require.True(t, ok)
		location, _ := course.LocationByName("ARC")
		day, _ := location.Day(3)
		assert.Len(t, day.Intervals, 1, "course %s should have the shift's interval", abbreviation)
	}
}

func TestBin_DegenerateCatalogEntryNeverMatches(t *testing.T) {
	start := time.Date(2025, 9, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	// A blank entry that slipped past upstream filtering must not crash or
	// capture any tag
	result, diagnostics := Bin(
		testCatalog("", "CS101"),
		[]string{"ARC"},
		[]Shift{mustShift(t, "ARC", "CS101", start, end)},
	)

	assert.Empty(t, diagnostics)

	degenerate := result[0]
	location, _ := degenerate.LocationByName("ARC")
	day, _ := location.Day(2)
	assert.Empty(t, day.Intervals)

	course, ok := result.CourseByAbbreviation("CS101")
	require.True(t, ok)
	location, _ = course.LocationByName("ARC")
	day, _ = location.Day(2)
	assert.Len(t, day.Intervals, 1)
}

func TestBin_DoesNotMutateInputs(t *testing.T) {
	start := time.Date(2025, 9, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	catalog := testCatalog("CS101")
	shifts := []Shift{mustShift(t, "ARC", "CS101", start, end)}

	catalogCopy := make([]CourseInfo, len(catalog))
	copy(catalogCopy, catalog)
	shiftsCopy := make([]Shift, len(shifts))
	copy(shiftsCopy, shifts)

	Bin(catalog, []string{"ARC"}, shifts)

	assert.Equal(t, catalogCopy, catalog)
	assert.Equal(t, shiftsCopy, shifts)
}

func TestBin_ShiftOrderDoesNotAffectResolvedSchedule(t *testing.T) {
	base := time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC) // Sunday, week start
	catalog := testCatalog("CS101", "MATH20")
	locations := []string{"ARC", "Library"}

	var shifts []Shift
	titles := []string{"CS101", "MATH20", "CS101, MATH20", "nonsense"}
	for day := 0; day < 5; day++ {
		for i, title := range titles {
			start := base.AddDate(0, 0, day).Add(time.Duration(9+i) * time.Hour)
			shifts = append(shifts, mustShift(t, locations[i%2], title, start, start.Add(90*time.Minute)))
		}
	}

	raw, _ := Bin(catalog, locations, shifts)
	reference := raw.Resolve()

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 5; trial++ {
		shuffled := make([]Shift, len(shifts))
		copy(shuffled, shifts)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		raw, _ := Bin(catalog, locations, shuffled)
		assert.Equal(t, reference, raw.Resolve())
	}
}

func TestBinWithThreshold_LooserThresholdCatchesNoisyTag(t *testing.T) {
	start := time.Date(2025, 9, 2, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	shifts := []Shift{mustShift(t, "ARC", "CS101x", start, end)}
	catalog := testCatalog("CS101")

	_, strict := Bin(catalog, []string{"ARC"}, shifts)
	require.Len(t, strict, 1)

	loose, diagnostics := BinWithThreshold(catalog, []string{"ARC"}, shifts, 0.7)
	assert.Empty(t, diagnostics)
	course, _ := loose.CourseByAbbreviation("CS101")
	location, _ := course.LocationByName("ARC")
	day, _ := location.Day(2)
	assert.Len(t, day.Intervals, 1)
}

package schedule

// DaysPerWeek is the number of daily slots in every location schedule
const DaysPerWeek = 7

// DailySchedule holds the coverage intervals for one weekday. Before
// resolution the intervals are raw (unordered, possibly overlapping);
// after resolution they are sorted and pairwise non-overlapping.
type DailySchedule struct {
	WeekDay   int        `json:"weekDay"`
	Intervals []Interval `json:"intervals"`
}

// LocationSchedule holds the seven daily schedules for one location,
// indexed 0 (Sunday) through 6 (Saturday).
type LocationSchedule struct {
	Location string          `json:"location"`
	Days     []DailySchedule `json:"days"`
}

// Day returns the daily schedule for the given weekday
func (ls LocationSchedule) Day(weekDay int) (DailySchedule, bool) {
	if weekDay < 0 || weekDay >= len(ls.Days) {
		return DailySchedule{}, false
	}
	return ls.Days[weekDay], true
}

// CourseSchedule holds one location schedule per requested location for a
// single catalog course, in the caller's location order.
type CourseSchedule struct {
	Course    CourseInfo         `json:"course"`
	Locations []LocationSchedule `json:"locations"`
}

// LocationByName returns the location schedule with the given name
func (cs CourseSchedule) LocationByName(name string) (LocationSchedule, bool) {
	for _, ls := range cs.Locations {
		if ls.Location == name {
			return ls, true
		}
	}
	return LocationSchedule{}, false
}

// Schedule is the full coverage result: one course schedule per catalog
// entry, in catalog order.
type Schedule []CourseSchedule

// CourseByAbbreviation returns the course schedule for the given catalog
// abbreviation
func (s Schedule) CourseByAbbreviation(abbreviation string) (CourseSchedule, bool) {
	for _, cs := range s {
		if cs.Course.Abbreviation == abbreviation {
			return cs, true
		}
	}
	return CourseSchedule{}, false
}

// BuildSkeleton creates an empty schedule with one cell for every
// catalog entry x location x weekday combination
func BuildSkeleton(catalog []CourseInfo, locations []string) Schedule {
	skeleton := make(Schedule, 0, len(catalog))
	for _, course := range catalog {
		locationSchedules := make([]LocationSchedule, 0, len(locations))
		for _, location := range locations {
			days := make([]DailySchedule, DaysPerWeek)
			for d := range days {
				days[d] = DailySchedule{WeekDay: d, Intervals: []Interval{}}
			}
			locationSchedules = append(locationSchedules, LocationSchedule{
				Location: location,
				Days:     days,
			})
		}
		skeleton = append(skeleton, CourseSchedule{
			Course:    course,
			Locations: locationSchedules,
		})
	}
	return skeleton
}

// Resolve returns a new schedule in which every cell's raw interval list
// has been merged into canonical coverage. The receiver is left untouched.
func (s Schedule) Resolve() Schedule {
	resolved := make(Schedule, 0, len(s))
	for _, cs := range s {
		locations := make([]LocationSchedule, 0, len(cs.Locations))
		for _, ls := range cs.Locations {
			days := make([]DailySchedule, 0, len(ls.Days))
			for _, ds := range ls.Days {
				days = append(days, DailySchedule{
					WeekDay:   ds.WeekDay,
					Intervals: Resolve(ds.Intervals),
				})
			}
			locations = append(locations, LocationSchedule{
				Location: ls.Location,
				Days:     days,
			})
		}
		resolved = append(resolved, CourseSchedule{
			Course:    cs.Course,
			Locations: locations,
		})
	}
	return resolved
}

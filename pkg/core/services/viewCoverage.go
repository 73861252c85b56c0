package services

import (
	"fmt"

	"github.com/learningcommons/coverage/pkg/core/schedule"
)

// ViewCoverage returns the coverage windows for one (course, location,
// weekday) cell of a resolved schedule. Unlike binning drops, a lookup
// against a cell that does not exist is a caller mistake and fails fast.
func ViewCoverage(s schedule.Schedule, course, location string, weekDay int) ([]schedule.Interval, error) {
	if weekDay < 0 || weekDay >= schedule.DaysPerWeek {
		return nil, fmt.Errorf("weekday must be 0-6, got %d", weekDay)
	}

	courseSchedule, ok := s.CourseByAbbreviation(course)
	if !ok {
		return nil, fmt.Errorf("course %q is not in the schedule", course)
	}

	locationSchedule, ok := courseSchedule.LocationByName(location)
	if !ok {
		return nil, fmt.Errorf("location %q is not in the schedule", location)
	}

	day, ok := locationSchedule.Day(weekDay)
	if !ok {
		return nil, fmt.Errorf("weekday %d missing from schedule", weekDay)
	}

	return day.Intervals, nil
}

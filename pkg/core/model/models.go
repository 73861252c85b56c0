package model

import "time"

// Event statuses as reported by the calendar backend
const (
	StatusConfirmed = "confirmed"
	StatusTentative = "tentative"
	StatusCancelled = "cancelled"
)

// Event represents one calendar event fetched for a location's staffing calendar
type Event struct {
	ID      string
	Summary string
	Start   time.Time
	End     time.Time
	Status  string
}

// IsCancelled reports whether the event was cancelled on the calendar
func (e Event) IsCancelled() bool {
	return e.Status == StatusCancelled
}

// Location pairs a display name with the calendar that holds its staffing events
type Location struct {
	Name       string
	CalendarID string
}

package db

import (
	"github.com/learningcommons/coverage/pkg/core/schedule"
)

// Snapshot is one persisted build of the weekly coverage schedule
type Snapshot struct {
	ID          string
	WeekStart   string // Date format
	CreatedAt   string // RFC3339
	Schedule    schedule.Schedule
	Diagnostics []schedule.Diagnostic
}

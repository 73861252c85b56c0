package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/learningcommons/coverage/internal/config"
	"github.com/learningcommons/coverage/pkg/catalog"
	"github.com/learningcommons/coverage/pkg/core/model"
	"github.com/learningcommons/coverage/pkg/core/schedule"
	"github.com/learningcommons/coverage/pkg/db"
)

// EventLister fetches one week of calendar events for a location's calendar
type EventLister interface {
	ListWeekEvents(calendarID string, weekStart time.Time) ([]model.Event, error)
}

// BuildOptions tunes a single schedule build
type BuildOptions struct {
	// WeekStart pins the build to an explicit week; when nil the week is
	// derived from the configured term rule
	WeekStart *time.Time

	// DryRun skips snapshot persistence
	DryRun bool
}

// BuildResult is the outcome of one schedule build
type BuildResult struct {
	WeekStart   time.Time
	Schedule    schedule.Schedule
	Diagnostics []schedule.Diagnostic
	Snapshot    *db.Snapshot
}

// BuildSchedule computes the resolved weekly coverage schedule: it loads
// the catalog, fetches each configured location's events for the target
// week, normalizes them into shifts, bins the shifts into the course x
// location x weekday skeleton and merges each cell into canonical
// coverage windows.
//
// Cancelled events and degenerate windows are dropped before shift
// construction; unmatched tags and unknown locations surface in the
// returned diagnostics. When a snapshot store is provided and DryRun is
// off, the result is persisted.
func BuildSchedule(
	ctx context.Context,
	cfg *config.Config,
	events EventLister,
	store db.SnapshotStore,
	logger *zap.Logger,
	opts BuildOptions,
) (*BuildResult, error) {
	weekStart, err := resolveWeekStart(cfg.TermRule, opts.WeekStart, time.Now())
	if err != nil {
		return nil, err
	}

	logger.Info("Building coverage schedule",
		zap.String("week_start", weekStart.Format("2006-01-02")),
		zap.Int("locations", len(cfg.Locations)))

	// Load the catalog
	courseCatalog, err := catalog.LoadFile(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Debug("Catalog loaded", zap.Int("courses", len(courseCatalog)))

	// Fetch and normalize shifts per location
	policy := cfg.TagPolicy()
	var shifts []schedule.Shift
	for _, location := range cfg.Locations {
		locationEvents, err := events.ListWeekEvents(location.CalendarID, weekStart)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch events for %s: %w", location.Name, err)
		}

		logger.Debug("Fetched events",
			zap.String("location", location.Name),
			zap.Int("count", len(locationEvents)))

		for _, event := range locationEvents {
			if event.IsCancelled() {
				logger.Debug("Skipping cancelled event",
					zap.String("location", location.Name),
					zap.String("event_id", event.ID))
				continue
			}

			shift, err := schedule.NewShift(location.Name, event.Summary, event.Start, event.End, policy)
			if err != nil {
				// Degenerate windows are data noise, not build failures
				logger.Warn("Skipping event with unusable window",
					zap.String("location", location.Name),
					zap.String("event_id", event.ID),
					zap.Error(err))
				continue
			}

			shifts = append(shifts, shift)
		}
	}

	logger.Info("Shifts normalized", zap.Int("count", len(shifts)))

	// Bin and resolve
	raw, diagnostics := schedule.BinWithThreshold(
		courseCatalog, cfg.LocationNames(), shifts, cfg.Threshold())
	resolved := raw.Resolve()

	for _, d := range diagnostics {
		logger.Debug("Dropped tag",
			zap.String("kind", string(d.Kind)),
			zap.String("tag", d.Tag),
			zap.String("location", d.Location),
			zap.Int("week_day", d.WeekDay))
	}
	if len(diagnostics) > 0 {
		logger.Info("Some tags were dropped during binning", zap.Int("count", len(diagnostics)))
	}

	result := &BuildResult{
		WeekStart:   weekStart,
		Schedule:    resolved,
		Diagnostics: diagnostics,
	}

	// Persist unless this is a dry run or persistence is not configured
	if store == nil || opts.DryRun {
		return result, nil
	}

	snapshot := &db.Snapshot{
		ID:          uuid.New().String(),
		WeekStart:   weekStart.Format("2006-01-02"),
		Schedule:    resolved,
		Diagnostics: diagnostics,
	}
	if err := store.InsertSnapshot(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("failed to save snapshot: %w", err)
	}

	logger.Info("Snapshot saved", zap.String("snapshot_id", snapshot.ID))
	result.Snapshot = snapshot

	return result, nil
}

// resolveWeekStart picks the week the build targets: an explicit override
// wins, otherwise the most recent term-rule occurrence at or before now
func resolveWeekStart(termRule string, override *time.Time, now time.Time) (time.Time, error) {
	if override != nil {
		return *override, nil
	}

	rule, err := rrule.StrToRRule(termRule)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid term rule: %w", err)
	}

	weekStart := rule.Before(now, true)
	if weekStart.IsZero() {
		return time.Time{}, fmt.Errorf("term rule yields no week start at or before %s", now.Format("2006-01-02"))
	}

	return weekStart, nil
}

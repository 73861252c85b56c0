package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/learningcommons/coverage/pkg/db"
)

// InsertSnapshot stores one coverage schedule build
func (d *DB) InsertSnapshot(ctx context.Context, snapshot *db.Snapshot) error {
	scheduleJSON, err := json.Marshal(snapshot.Schedule)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	diagnosticsJSON, err := json.Marshal(snapshot.Diagnostics)
	if err != nil {
		return fmt.Errorf("failed to marshal diagnostics: %w", err)
	}

	_, err = d.pool.Exec(ctx, `
		INSERT INTO schedule_snapshot (id, week_start, schedule, diagnostics)
		VALUES ($1, $2, $3, $4)
	`, snapshot.ID, snapshot.WeekStart, scheduleJSON, diagnosticsJSON)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return nil
}

// GetSnapshots retrieves all snapshots, newest first
func (d *DB) GetSnapshots(ctx context.Context) ([]db.Snapshot, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, week_start, created_at, schedule, diagnostics
		FROM schedule_snapshot
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []db.Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, *snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snapshots, nil
}

// GetLatestSnapshot retrieves the most recently created snapshot, or nil
// when none exists
func (d *DB) GetLatestSnapshot(ctx context.Context) (*db.Snapshot, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id, week_start, created_at, schedule, diagnostics
		FROM schedule_snapshot
		ORDER BY created_at DESC
		LIMIT 1
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("error reading latest snapshot: %w", err)
		}
		return nil, nil
	}

	return scanSnapshot(rows)
}

func scanSnapshot(row pgx.Row) (*db.Snapshot, error) {
	var s db.Snapshot
	var weekStart, createdAt time.Time
	var scheduleJSON, diagnosticsJSON []byte

	if err := row.Scan(&s.ID, &weekStart, &createdAt, &scheduleJSON, &diagnosticsJSON); err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	s.WeekStart = weekStart.Format("2006-01-02")
	s.CreatedAt = createdAt.UTC().Format(time.RFC3339)

	if err := json.Unmarshal(scheduleJSON, &s.Schedule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schedule: %w", err)
	}
	if err := json.Unmarshal(diagnosticsJSON, &s.Diagnostics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal diagnostics: %w", err)
	}

	return &s, nil
}

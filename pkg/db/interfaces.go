package db

import "context"

// SnapshotStore persists and retrieves coverage schedule snapshots
type SnapshotStore interface {
	InsertSnapshot(ctx context.Context, snapshot *Snapshot) error
	GetSnapshots(ctx context.Context) ([]Snapshot, error)
	GetLatestSnapshot(ctx context.Context) (*Snapshot, error)
}

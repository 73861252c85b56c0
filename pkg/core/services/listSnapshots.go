package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/learningcommons/coverage/pkg/db"
)

// ListSnapshots returns all stored schedule snapshots, newest first
func ListSnapshots(ctx context.Context, store db.SnapshotStore, logger *zap.Logger) ([]db.Snapshot, error) {
	snapshots, err := store.GetSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch snapshots: %w", err)
	}

	logger.Debug("Fetched snapshots", zap.Int("count", len(snapshots)))
	return snapshots, nil
}

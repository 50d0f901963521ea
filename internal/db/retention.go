package db

import (
	"context"
	"time"

	"github.com/jusunglee/hanzify/internal/metrics"
)

// PurgeOlderThan deletes lookups recorded more than age ago.
func PurgeOlderThan(ctx context.Context, repo Repository, age time.Duration) (int64, error) {
	deleted, err := repo.DeleteOldLookups(ctx, time.Now().Add(-age))
	if err != nil {
		return 0, err
	}
	metrics.LookupsPurged.Add(float64(deleted))
	return deleted, nil
}

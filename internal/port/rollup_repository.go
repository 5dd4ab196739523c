package port

import (
	"context"
	"time"

	"dentrack/internal/domain"
)

// RollupRepository defines persistence operations for weekly rollups.
// A week's row set is only ever written as a whole snapshot.
type RollupRepository interface {
	// InsertWeek inserts the given rows for a week in one transaction.
	InsertWeek(ctx context.Context, rollups []domain.Rollup) error
	// ReplaceWeek deletes all rows for weekStart and inserts the given
	// rows in the same transaction.
	ReplaceWeek(ctx context.Context, weekStart time.Time, rollups []domain.Rollup) error
	// List returns all rollups ordered by week descending, then clinic.
	List(ctx context.Context) ([]domain.Rollup, error)
	ListByWeek(ctx context.Context, weekStart time.Time) ([]domain.Rollup, error)
	// LatestWeek returns the most recent week start with rollup rows, or
	// nil when none exist.
	LatestWeek(ctx context.Context) (*time.Time, error)
}

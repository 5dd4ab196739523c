package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"dentrack/internal/domain"
	"dentrack/internal/port"
)

type rollupRepo struct {
	db *sqlx.DB
}

// NewRollupRepo creates a new PostgreSQL-backed RollupRepository.
func NewRollupRepo(db *sqlx.DB) port.RollupRepository {
	return &rollupRepo{db: db}
}

func (r *rollupRepo) InsertWeek(ctx context.Context, rollups []domain.Rollup) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("rollupRepo.InsertWeek begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := insertRollups(ctx, tx, rollups); err != nil {
		return fmt.Errorf("rollupRepo.InsertWeek: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("rollupRepo.InsertWeek commit: %w", err)
	}
	return nil
}

// ReplaceWeek deletes the week's rows and inserts the new snapshot in the
// same transaction, so refreshing is never observable as a half-replaced
// week.
func (r *rollupRepo) ReplaceWeek(ctx context.Context, weekStart time.Time, rollups []domain.Rollup) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("rollupRepo.ReplaceWeek begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM rollups WHERE week_start = $1", weekStart); err != nil {
		return fmt.Errorf("rollupRepo.ReplaceWeek delete: %w", err)
	}
	if err := insertRollups(ctx, tx, rollups); err != nil {
		return fmt.Errorf("rollupRepo.ReplaceWeek: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("rollupRepo.ReplaceWeek commit: %w", err)
	}
	return nil
}

func insertRollups(ctx context.Context, tx *sqlx.Tx, rollups []domain.Rollup) error {
	now := time.Now().UTC()
	for i := range rollups {
		rollup := &rollups[i]
		if rollup.ID == uuid.Nil {
			rollup.ID = uuid.New()
		}
		rollup.CreatedAt = now
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO rollups (
				id, week_start, clinic_id, total_production, total_collections,
				estimated_pay, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			rollup.ID, rollup.WeekStart, rollup.ClinicID, rollup.TotalProduction,
			rollup.TotalCollections, rollup.EstimatedPay, rollup.CreatedAt); err != nil {
			return fmt.Errorf("insert rollup: %w", err)
		}
	}
	return nil
}

func (r *rollupRepo) List(ctx context.Context) ([]domain.Rollup, error) {
	var rollups []domain.Rollup
	err := r.db.SelectContext(ctx, &rollups,
		"SELECT * FROM rollups ORDER BY week_start DESC, clinic_id")
	if err != nil {
		return nil, fmt.Errorf("rollupRepo.List: %w", err)
	}
	return rollups, nil
}

func (r *rollupRepo) ListByWeek(ctx context.Context, weekStart time.Time) ([]domain.Rollup, error) {
	var rollups []domain.Rollup
	err := r.db.SelectContext(ctx, &rollups,
		"SELECT * FROM rollups WHERE week_start = $1 ORDER BY clinic_id", weekStart)
	if err != nil {
		return nil, fmt.Errorf("rollupRepo.ListByWeek: %w", err)
	}
	return rollups, nil
}

func (r *rollupRepo) LatestWeek(ctx context.Context) (*time.Time, error) {
	var week time.Time
	err := r.db.GetContext(ctx, &week,
		"SELECT week_start FROM rollups ORDER BY week_start DESC LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("rollupRepo.LatestWeek: %w", err)
	}
	return &week, nil
}

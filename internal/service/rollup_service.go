package service

import (
	"bytes"
	"context"
	"log"
	"sort"
	"time"

	"github.com/google/uuid"

	"dentrack/internal/domain"
	"dentrack/internal/port"
)

// RollupService materializes weekly per-clinic and organization-wide
// summaries from processed uploads.
type RollupService interface {
	// Generate computes and inserts rollup rows for the week starting
	// at weekStart (a Monday). Zero matching uploads create zero rows,
	// not even the overall row.
	Generate(ctx context.Context, weekStart time.Time) ([]domain.Rollup, error)
	// Refresh deletes the week's existing rows and regenerates them
	// from the current processed uploads. Safe to call repeatedly; this
	// is the only supported way to correct a rollup.
	Refresh(ctx context.Context, weekStart time.Time) ([]domain.Rollup, error)
	List(ctx context.Context) ([]domain.Rollup, error)
	ListByWeek(ctx context.Context, weekStart time.Time) ([]domain.Rollup, error)
	// LatestWeek returns the most recent week with rollups, or nil.
	LatestWeek(ctx context.Context) (*time.Time, error)
}

type rollupService struct {
	rollups              port.RollupRepository
	uploads              port.UploadRepository
	defaultPayPercentage float64
	weekLocks            keyedMutex
}

// NewRollupService creates a new RollupService implementation.
// defaultPayPercentage applies to the organization-wide row only.
func NewRollupService(rollups port.RollupRepository, uploads port.UploadRepository, defaultPayPercentage float64) RollupService {
	return &rollupService{
		rollups:              rollups,
		uploads:              uploads,
		defaultPayPercentage: defaultPayPercentage,
	}
}

func (s *rollupService) Generate(ctx context.Context, weekStart time.Time) ([]domain.Rollup, error) {
	weekStart, err := normalizeWeekStart(weekStart)
	if err != nil {
		return nil, err
	}
	unlock := s.weekLocks.Lock(weekStart.Format("2006-01-02"))
	defer unlock()

	rows, err := s.computeWeek(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	if err := s.rollups.InsertWeek(ctx, rows); err != nil {
		return nil, err
	}
	log.Printf("rollupService: generated %d rollups for week %s", len(rows), weekStart.Format("2006-01-02"))
	return rows, nil
}

func (s *rollupService) Refresh(ctx context.Context, weekStart time.Time) ([]domain.Rollup, error) {
	weekStart, err := normalizeWeekStart(weekStart)
	if err != nil {
		return nil, err
	}
	unlock := s.weekLocks.Lock(weekStart.Format("2006-01-02"))
	defer unlock()

	rows, err := s.computeWeek(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	if err := s.rollups.ReplaceWeek(ctx, weekStart, rows); err != nil {
		return nil, err
	}
	log.Printf("rollupService: refreshed week %s with %d rollups", weekStart.Format("2006-01-02"), len(rows))
	return rows, nil
}

// computeWeek aggregates processed uploads in [weekStart, weekStart+7d)
// into one row per clinic plus the synthetic organization-wide row.
// Every row comes from the same snapshot read.
func (s *rollupService) computeWeek(ctx context.Context, weekStart time.Time) ([]domain.Rollup, error) {
	weekEnd := weekStart.AddDate(0, 0, 7)
	entries, err := s.uploads.ListProcessedInWindow(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	type clinicTotals struct {
		production    float64
		collections   float64
		payPercentage float64
	}
	totals := make(map[uuid.UUID]*clinicTotals)
	for _, entry := range entries {
		t, ok := totals[entry.ClinicID]
		if !ok {
			t = &clinicTotals{payPercentage: entry.PayPercentage}
			totals[entry.ClinicID] = t
		}
		t.production += entry.ProductionAmount
		t.collections += entry.CollectionsAmount
	}

	clinicIDs := make([]uuid.UUID, 0, len(totals))
	for id := range totals {
		clinicIDs = append(clinicIDs, id)
	}
	sort.Slice(clinicIDs, func(i, j int) bool {
		return bytes.Compare(clinicIDs[i][:], clinicIDs[j][:]) < 0
	})

	rows := make([]domain.Rollup, 0, len(clinicIDs)+1)
	var overallProduction, overallCollections float64
	for _, id := range clinicIDs {
		id := id
		t := totals[id]
		rows = append(rows, domain.Rollup{
			WeekStart:        weekStart,
			ClinicID:         &id,
			TotalProduction:  t.production,
			TotalCollections: t.collections,
			EstimatedPay:     t.collections * t.payPercentage,
		})
		overallProduction += t.production
		overallCollections += t.collections
	}

	// The overall row uses the organization default pay percentage,
	// independent of any per-clinic percentage.
	rows = append(rows, domain.Rollup{
		WeekStart:        weekStart,
		ClinicID:         nil,
		TotalProduction:  overallProduction,
		TotalCollections: overallCollections,
		EstimatedPay:     overallCollections * s.defaultPayPercentage,
	})
	return rows, nil
}

func (s *rollupService) List(ctx context.Context) ([]domain.Rollup, error) {
	return s.rollups.List(ctx)
}

func (s *rollupService) ListByWeek(ctx context.Context, weekStart time.Time) ([]domain.Rollup, error) {
	weekStart, err := normalizeWeekStart(weekStart)
	if err != nil {
		return nil, err
	}
	return s.rollups.ListByWeek(ctx, weekStart)
}

func (s *rollupService) LatestWeek(ctx context.Context) (*time.Time, error) {
	return s.rollups.LatestWeek(ctx)
}

// normalizeWeekStart truncates to midnight UTC and rejects week starts
// that are not Mondays.
func normalizeWeekStart(weekStart time.Time) (time.Time, error) {
	weekStart = time.Date(weekStart.Year(), weekStart.Month(), weekStart.Day(), 0, 0, 0, 0, time.UTC)
	if weekStart.Weekday() != time.Monday {
		return time.Time{}, domain.ErrInvalidWeekStart
	}
	return weekStart, nil
}

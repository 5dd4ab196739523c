package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dentrack/internal/domain"
	"dentrack/internal/service"
	"dentrack/mocks"
)

var monday = time.Date(2024, time.February, 5, 0, 0, 0, 0, time.UTC)

func TestRollupService_Generate_PerClinicAndOverallRows(t *testing.T) {
	rollupRepo := new(mocks.MockRollupRepo)
	uploadRepo := new(mocks.MockUploadRepo)
	svc := service.NewRollupService(rollupRepo, uploadRepo, 0.35)

	clinicA := uuid.MustParse("00000000-0000-0000-0000-00000000000a")
	clinicB := uuid.MustParse("00000000-0000-0000-0000-00000000000b")
	entries := []domain.WeeklyEntry{
		{ClinicID: clinicA, PayPercentage: 0.40, ProductionAmount: 1000, CollectionsAmount: 500},
		{ClinicID: clinicA, PayPercentage: 0.40, ProductionAmount: 200, CollectionsAmount: 300},
		{ClinicID: clinicB, PayPercentage: 0.25, ProductionAmount: 1500, CollectionsAmount: 1200},
	}
	uploadRepo.On("ListProcessedInWindow", mock.Anything, monday, monday.AddDate(0, 0, 7)).
		Return(entries, nil)
	rollupRepo.On("InsertWeek", mock.Anything, mock.Anything).Return(nil)

	rows, err := svc.Generate(context.Background(), monday)

	require.NoError(t, err)
	require.Len(t, rows, 3)

	a := rows[0]
	require.NotNil(t, a.ClinicID)
	assert.Equal(t, clinicA, *a.ClinicID)
	assert.Equal(t, 1200.0, a.TotalProduction)
	assert.Equal(t, 800.0, a.TotalCollections)
	assert.InDelta(t, 320.0, a.EstimatedPay, 1e-9)

	b := rows[1]
	require.NotNil(t, b.ClinicID)
	assert.Equal(t, clinicB, *b.ClinicID)
	assert.Equal(t, 1500.0, b.TotalProduction)
	assert.Equal(t, 1200.0, b.TotalCollections)
	assert.InDelta(t, 300.0, b.EstimatedPay, 1e-9)

	overall := rows[2]
	assert.Nil(t, overall.ClinicID)
	assert.Equal(t, 2700.0, overall.TotalProduction)
	assert.Equal(t, 2000.0, overall.TotalCollections)
	assert.InDelta(t, 700.0, overall.EstimatedPay, 1e-9)

	for _, row := range rows {
		assert.Equal(t, monday, row.WeekStart)
	}
	rollupRepo.AssertExpectations(t)
}

func TestRollupService_Generate_EmptyWeekCreatesNoRows(t *testing.T) {
	rollupRepo := new(mocks.MockRollupRepo)
	uploadRepo := new(mocks.MockUploadRepo)
	svc := service.NewRollupService(rollupRepo, uploadRepo, 0.35)

	uploadRepo.On("ListProcessedInWindow", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.WeeklyEntry{}, nil)

	rows, err := svc.Generate(context.Background(), monday)

	require.NoError(t, err)
	assert.Empty(t, rows)
	rollupRepo.AssertNotCalled(t, "InsertWeek", mock.Anything, mock.Anything)
}

func TestRollupService_Generate_RejectsNonMonday(t *testing.T) {
	rollupRepo := new(mocks.MockRollupRepo)
	uploadRepo := new(mocks.MockUploadRepo)
	svc := service.NewRollupService(rollupRepo, uploadRepo, 0.35)

	tuesday := monday.AddDate(0, 0, 1)
	_, err := svc.Generate(context.Background(), tuesday)

	assert.ErrorIs(t, err, domain.ErrInvalidWeekStart)
	uploadRepo.AssertNotCalled(t, "ListProcessedInWindow", mock.Anything, mock.Anything, mock.Anything)
}

func TestRollupService_Generate_TruncatesTimeOfDay(t *testing.T) {
	rollupRepo := new(mocks.MockRollupRepo)
	uploadRepo := new(mocks.MockUploadRepo)
	svc := service.NewRollupService(rollupRepo, uploadRepo, 0.35)

	uploadRepo.On("ListProcessedInWindow", mock.Anything, monday, monday.AddDate(0, 0, 7)).
		Return([]domain.WeeklyEntry{}, nil)

	mondayAfternoon := monday.Add(15 * time.Hour)
	_, err := svc.Generate(context.Background(), mondayAfternoon)

	require.NoError(t, err)
	uploadRepo.AssertExpectations(t)
}

func TestRollupService_Refresh_ReplacesWeekSnapshot(t *testing.T) {
	rollupRepo := new(mocks.MockRollupRepo)
	uploadRepo := new(mocks.MockUploadRepo)
	svc := service.NewRollupService(rollupRepo, uploadRepo, 0.35)

	clinicID := uuid.New()
	entries := []domain.WeeklyEntry{
		{ClinicID: clinicID, PayPercentage: 0.30, ProductionAmount: 100, CollectionsAmount: 90},
	}
	uploadRepo.On("ListProcessedInWindow", mock.Anything, monday, monday.AddDate(0, 0, 7)).
		Return(entries, nil)
	rollupRepo.On("ReplaceWeek", mock.Anything, monday, mock.MatchedBy(func(rows []domain.Rollup) bool {
		return len(rows) == 2
	})).Return(nil)

	rows, err := svc.Refresh(context.Background(), monday)

	require.NoError(t, err)
	require.Len(t, rows, 2)
	rollupRepo.AssertExpectations(t)
}

func TestRollupService_Refresh_EmptyWeekStillReplaces(t *testing.T) {
	rollupRepo := new(mocks.MockRollupRepo)
	uploadRepo := new(mocks.MockUploadRepo)
	svc := service.NewRollupService(rollupRepo, uploadRepo, 0.35)

	uploadRepo.On("ListProcessedInWindow", mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.WeeklyEntry{}, nil)
	rollupRepo.On("ReplaceWeek", mock.Anything, monday, mock.MatchedBy(func(rows []domain.Rollup) bool {
		return len(rows) == 0
	})).Return(nil)

	rows, err := svc.Refresh(context.Background(), monday)

	require.NoError(t, err)
	assert.Empty(t, rows)
	rollupRepo.AssertExpectations(t)
}

func TestRollupService_ListByWeek_RejectsNonMonday(t *testing.T) {
	rollupRepo := new(mocks.MockRollupRepo)
	uploadRepo := new(mocks.MockUploadRepo)
	svc := service.NewRollupService(rollupRepo, uploadRepo, 0.35)

	_, err := svc.ListByWeek(context.Background(), monday.AddDate(0, 0, 3))

	assert.ErrorIs(t, err, domain.ErrInvalidWeekStart)
}

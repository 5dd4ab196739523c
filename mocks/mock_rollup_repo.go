package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"dentrack/internal/domain"
)

type MockRollupRepo struct {
	mock.Mock
}

func (m *MockRollupRepo) InsertWeek(ctx context.Context, rollups []domain.Rollup) error {
	args := m.Called(ctx, rollups)
	return args.Error(0)
}

func (m *MockRollupRepo) ReplaceWeek(ctx context.Context, weekStart time.Time, rollups []domain.Rollup) error {
	args := m.Called(ctx, weekStart, rollups)
	return args.Error(0)
}

func (m *MockRollupRepo) List(ctx context.Context) ([]domain.Rollup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rollup), args.Error(1)
}

func (m *MockRollupRepo) ListByWeek(ctx context.Context, weekStart time.Time) ([]domain.Rollup, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rollup), args.Error(1)
}

func (m *MockRollupRepo) LatestWeek(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

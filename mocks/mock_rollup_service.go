package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"dentrack/internal/domain"
)

type MockRollupService struct {
	mock.Mock
}

func (m *MockRollupService) Generate(ctx context.Context, weekStart time.Time) ([]domain.Rollup, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rollup), args.Error(1)
}

func (m *MockRollupService) Refresh(ctx context.Context, weekStart time.Time) ([]domain.Rollup, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rollup), args.Error(1)
}

func (m *MockRollupService) List(ctx context.Context) ([]domain.Rollup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rollup), args.Error(1)
}

func (m *MockRollupService) ListByWeek(ctx context.Context, weekStart time.Time) ([]domain.Rollup, error) {
	args := m.Called(ctx, weekStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Rollup), args.Error(1)
}

func (m *MockRollupService) LatestWeek(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

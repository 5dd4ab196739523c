package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dentrack/internal/config"
	"dentrack/internal/domain"
)

type MockClinicService struct {
	mock.Mock
}

func (m *MockClinicService) List(ctx context.Context) ([]domain.Clinic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Clinic), args.Error(1)
}

func (m *MockClinicService) Create(ctx context.Context, name string, payPercentage float64) (*domain.Clinic, error) {
	args := m.Called(ctx, name, payPercentage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clinic), args.Error(1)
}

func (m *MockClinicService) GetOrCreate(ctx context.Context, name string) (*domain.Clinic, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clinic), args.Error(1)
}

func (m *MockClinicService) Seed(ctx context.Context, entries []config.ClinicEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockClinicService) Attribute(ctx context.Context, rawText string) (*domain.Clinic, error) {
	args := m.Called(ctx, rawText)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clinic), args.Error(1)
}

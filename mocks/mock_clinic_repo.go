package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"dentrack/internal/domain"
)

type MockClinicRepo struct {
	mock.Mock
}

func (m *MockClinicRepo) Create(ctx context.Context, clinic *domain.Clinic) error {
	args := m.Called(ctx, clinic)
	return args.Error(0)
}

func (m *MockClinicRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Clinic, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clinic), args.Error(1)
}

func (m *MockClinicRepo) GetByName(ctx context.Context, name string) (*domain.Clinic, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clinic), args.Error(1)
}

func (m *MockClinicRepo) List(ctx context.Context) ([]domain.Clinic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Clinic), args.Error(1)
}

func (m *MockClinicRepo) First(ctx context.Context) (*domain.Clinic, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Clinic), args.Error(1)
}

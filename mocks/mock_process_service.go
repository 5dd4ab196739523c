package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"dentrack/internal/domain"
	"dentrack/internal/service"
)

type MockProcessService struct {
	mock.Mock
}

func (m *MockProcessService) ProcessNewUploads(ctx context.Context) (*service.BatchReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BatchReport), args.Error(1)
}

func (m *MockProcessService) ReprocessUpload(ctx context.Context, id uuid.UUID) (bool, *service.BatchItemResult, error) {
	args := m.Called(ctx, id)
	if args.Get(1) == nil {
		return args.Bool(0), nil, args.Error(2)
	}
	return args.Bool(0), args.Get(1).(*service.BatchItemResult), args.Error(2)
}

type MockIngestService struct {
	mock.Mock
}

func (m *MockIngestService) RegisterIncoming(ctx context.Context) ([]domain.Upload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Upload), args.Error(1)
}

package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"dentrack/internal/domain"
	"dentrack/internal/port"
)

type MockUploadRepo struct {
	mock.Mock
}

func (m *MockUploadRepo) Create(ctx context.Context, upload *domain.Upload) error {
	args := m.Called(ctx, upload)
	return args.Error(0)
}

func (m *MockUploadRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Upload, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Upload), args.Error(1)
}

func (m *MockUploadRepo) List(ctx context.Context) ([]domain.Upload, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Upload), args.Error(1)
}

func (m *MockUploadRepo) ListByStatus(ctx context.Context, status domain.UploadStatus) ([]domain.Upload, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Upload), args.Error(1)
}

func (m *MockUploadRepo) ListFilenames(ctx context.Context) (map[string]bool, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockUploadRepo) ApplyProcessingResult(ctx context.Context, result *port.ProcessingResult) error {
	args := m.Called(ctx, result)
	return args.Error(0)
}

func (m *MockUploadRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	args := m.Called(ctx, id, reason)
	return args.Error(0)
}

func (m *MockUploadRepo) ListLineItems(ctx context.Context, uploadID uuid.UUID) ([]domain.LineItem, error) {
	args := m.Called(ctx, uploadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LineItem), args.Error(1)
}

func (m *MockUploadRepo) ListProcessedInWindow(ctx context.Context, from, to time.Time) ([]domain.WeeklyEntry, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.WeeklyEntry), args.Error(1)
}

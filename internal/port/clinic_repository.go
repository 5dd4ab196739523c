package port

import (
	"context"

	"github.com/google/uuid"

	"dentrack/internal/domain"
)

// ClinicRepository defines persistence operations for clinics.
type ClinicRepository interface {
	Create(ctx context.Context, clinic *domain.Clinic) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Clinic, error)
	GetByName(ctx context.Context, name string) (*domain.Clinic, error)
	// List returns all clinics ordered by name.
	List(ctx context.Context) ([]domain.Clinic, error)
	// First returns the clinic with the lowest id, used as the default
	// owner for newly registered uploads.
	First(ctx context.Context) (*domain.Clinic, error)
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"dentrack/internal/domain"
	"dentrack/internal/port"
)

type clinicRepo struct {
	db *sqlx.DB
}

// NewClinicRepo creates a new PostgreSQL-backed ClinicRepository.
func NewClinicRepo(db *sqlx.DB) port.ClinicRepository {
	return &clinicRepo{db: db}
}

func (r *clinicRepo) Create(ctx context.Context, clinic *domain.Clinic) error {
	if clinic.ID == uuid.Nil {
		clinic.ID = uuid.New()
	}
	clinic.CreatedAt = time.Now().UTC()

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO clinics (id, name, pay_percentage, created_at)
		 VALUES ($1, $2, $3, $4)`,
		clinic.ID, clinic.Name, clinic.PayPercentage, clinic.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return domain.ErrDuplicateClinicName
		}
		return fmt.Errorf("clinicRepo.Create: %w", err)
	}
	return nil
}

func (r *clinicRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Clinic, error) {
	var clinic domain.Clinic
	err := r.db.GetContext(ctx, &clinic,
		"SELECT * FROM clinics WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClinicNotFound
		}
		return nil, fmt.Errorf("clinicRepo.GetByID: %w", err)
	}
	return &clinic, nil
}

func (r *clinicRepo) GetByName(ctx context.Context, name string) (*domain.Clinic, error) {
	var clinic domain.Clinic
	err := r.db.GetContext(ctx, &clinic,
		"SELECT * FROM clinics WHERE name = $1", name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClinicNotFound
		}
		return nil, fmt.Errorf("clinicRepo.GetByName: %w", err)
	}
	return &clinic, nil
}

func (r *clinicRepo) List(ctx context.Context) ([]domain.Clinic, error) {
	var clinics []domain.Clinic
	err := r.db.SelectContext(ctx, &clinics,
		"SELECT * FROM clinics ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("clinicRepo.List: %w", err)
	}
	return clinics, nil
}

func (r *clinicRepo) First(ctx context.Context) (*domain.Clinic, error) {
	var clinic domain.Clinic
	err := r.db.GetContext(ctx, &clinic,
		"SELECT * FROM clinics ORDER BY id LIMIT 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrClinicNotFound
		}
		return nil, fmt.Errorf("clinicRepo.First: %w", err)
	}
	return &clinic, nil
}

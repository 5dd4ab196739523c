package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"dentrack/internal/config"
	"dentrack/internal/domain"
	"dentrack/internal/port"
)

// ClinicService defines the clinic directory contract, including
// free-text attribution.
type ClinicService interface {
	List(ctx context.Context) ([]domain.Clinic, error)
	Create(ctx context.Context, name string, payPercentage float64) (*domain.Clinic, error)
	// GetOrCreate looks a clinic up by name and creates it with the
	// default pay percentage on a miss. It is race-tolerant: a
	// concurrent insert of the same name resolves to the existing row.
	GetOrCreate(ctx context.Context, name string) (*domain.Clinic, error)
	// Seed inserts clinics from the config entries, skipping names that
	// already exist. Malformed entries propagate as errors.
	Seed(ctx context.Context, entries []config.ClinicEntry) error
	// Attribute scans rawText for known clinic names. The longest
	// matching name wins; ties break to the lowest clinic id. A nil
	// clinic with a nil error means no match.
	Attribute(ctx context.Context, rawText string) (*domain.Clinic, error)
}

type clinicService struct {
	repo                 port.ClinicRepository
	defaultPayPercentage float64
}

// NewClinicService creates a new ClinicService implementation.
func NewClinicService(repo port.ClinicRepository, defaultPayPercentage float64) ClinicService {
	return &clinicService{repo: repo, defaultPayPercentage: defaultPayPercentage}
}

func (s *clinicService) List(ctx context.Context) ([]domain.Clinic, error) {
	return s.repo.List(ctx)
}

func (s *clinicService) Create(ctx context.Context, name string, payPercentage float64) (*domain.Clinic, error) {
	clinic := &domain.Clinic{Name: name, PayPercentage: payPercentage}
	if err := s.repo.Create(ctx, clinic); err != nil {
		return nil, err
	}
	return clinic, nil
}

func (s *clinicService) GetOrCreate(ctx context.Context, name string) (*domain.Clinic, error) {
	clinic, err := s.repo.GetByName(ctx, name)
	if err == nil {
		return clinic, nil
	}
	if !errors.Is(err, domain.ErrClinicNotFound) {
		return nil, err
	}

	clinic = &domain.Clinic{Name: name, PayPercentage: s.defaultPayPercentage}
	err = s.repo.Create(ctx, clinic)
	if err == nil {
		return clinic, nil
	}
	if errors.Is(err, domain.ErrDuplicateClinicName) {
		// Lost the insert race; the row exists now.
		return s.repo.GetByName(ctx, name)
	}
	return nil, err
}

func (s *clinicService) Seed(ctx context.Context, entries []config.ClinicEntry) error {
	for _, entry := range entries {
		_, err := s.repo.GetByName(ctx, entry.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrClinicNotFound) {
			return fmt.Errorf("seeding clinic %q: %w", entry.Name, err)
		}

		payPercentage := s.defaultPayPercentage
		if entry.PayPercentage != nil {
			payPercentage = *entry.PayPercentage
		}
		clinic := &domain.Clinic{Name: entry.Name, PayPercentage: payPercentage}
		if err := s.repo.Create(ctx, clinic); err != nil {
			if errors.Is(err, domain.ErrDuplicateClinicName) {
				continue
			}
			return fmt.Errorf("seeding clinic %q: %w", entry.Name, err)
		}
		log.Printf("clinicService: seeded clinic %q (pay %.2f)", entry.Name, payPercentage)
	}
	return nil
}

func (s *clinicService) Attribute(ctx context.Context, rawText string) (*domain.Clinic, error) {
	clinics, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	var best *domain.Clinic
	for i := range clinics {
		clinic := &clinics[i]
		re, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(clinic.Name) + `\b`)
		if err != nil {
			continue
		}
		if !re.MatchString(rawText) {
			continue
		}
		// Longer names are assumed more specific; ties break to the
		// lowest id so repeated runs attribute identically.
		if best == nil ||
			len(clinic.Name) > len(best.Name) ||
			(len(clinic.Name) == len(best.Name) && bytes.Compare(clinic.ID[:], best.ID[:]) < 0) {
			best = clinic
		}
	}
	return best, nil
}

package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"dentrack/internal/domain"
)

// ProcessingResult carries everything a successful processing pass writes
// for one upload. The repository applies it in a single transaction:
// the upload row update and the full line-item replacement either both
// land or neither does.
type ProcessingResult struct {
	UploadID          uuid.UUID
	ClinicID          *uuid.UUID
	RawText           string
	ProductionAmount  *float64
	CollectionsAmount *float64
	LineItems         []domain.LineItem
}

// UploadRepository defines persistence operations for uploads and their
// derived line items.
type UploadRepository interface {
	Create(ctx context.Context, upload *domain.Upload) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Upload, error)
	// List returns all uploads, newest first.
	List(ctx context.Context) ([]domain.Upload, error)
	// ListByStatus returns uploads with the given status ordered by
	// registration time, oldest first.
	ListByStatus(ctx context.Context, status domain.UploadStatus) ([]domain.Upload, error)
	// ListFilenames returns every registered filename, used to skip
	// already-known files during ingestion.
	ListFilenames(ctx context.Context) (map[string]bool, error)
	// ApplyProcessingResult marks the upload processed, clears its
	// failure reason, and replaces its line items atomically.
	ApplyProcessingResult(ctx context.Context, result *ProcessingResult) error
	// MarkFailed sets status failed with the given reason.
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
	ListLineItems(ctx context.Context, uploadID uuid.UUID) ([]domain.LineItem, error)
	// ListProcessedInWindow returns per-upload amounts for processed
	// uploads whose entry date falls in [from, to), joined to their
	// clinic's pay percentage. Uploads without a clinic are excluded.
	ListProcessedInWindow(ctx context.Context, from, to time.Time) ([]domain.WeeklyEntry, error)
}

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

type uploadRepo struct {
	db *sqlx.DB
}

// NewUploadRepo creates a new PostgreSQL-backed UploadRepository.
func NewUploadRepo(db *sqlx.DB) port.UploadRepository {
	return &uploadRepo{db: db}
}

func (r *uploadRepo) Create(ctx context.Context, upload *domain.Upload) error {
	if upload.ID == uuid.Nil {
		upload.ID = uuid.New()
	}
	now := time.Now().UTC()
	upload.CreatedAt = now
	upload.UpdatedAt = now
	if upload.Status == "" {
		upload.Status = domain.UploadStatusNew
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO uploads (
			id, filename, clinic_id, entry_date, status,
			raw_text, production_amount, collections_amount, failure_reason,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		upload.ID, upload.Filename, upload.ClinicID, upload.EntryDate, upload.Status,
		upload.RawText, upload.ProductionAmount, upload.CollectionsAmount, upload.FailureReason,
		upload.CreatedAt, upload.UpdatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") && strings.Contains(err.Error(), "filename") {
			return domain.ErrDuplicateFilename
		}
		return fmt.Errorf("uploadRepo.Create: %w", err)
	}
	return nil
}

func (r *uploadRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Upload, error) {
	var upload domain.Upload
	err := r.db.GetContext(ctx, &upload,
		"SELECT * FROM uploads WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUploadNotFound
		}
		return nil, fmt.Errorf("uploadRepo.GetByID: %w", err)
	}
	return &upload, nil
}

func (r *uploadRepo) List(ctx context.Context) ([]domain.Upload, error) {
	var uploads []domain.Upload
	err := r.db.SelectContext(ctx, &uploads,
		"SELECT * FROM uploads ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("uploadRepo.List: %w", err)
	}
	return uploads, nil
}

func (r *uploadRepo) ListByStatus(ctx context.Context, status domain.UploadStatus) ([]domain.Upload, error) {
	var uploads []domain.Upload
	err := r.db.SelectContext(ctx, &uploads,
		"SELECT * FROM uploads WHERE status = $1 ORDER BY created_at", status)
	if err != nil {
		return nil, fmt.Errorf("uploadRepo.ListByStatus: %w", err)
	}
	return uploads, nil
}

func (r *uploadRepo) ListFilenames(ctx context.Context) (map[string]bool, error) {
	var filenames []string
	err := r.db.SelectContext(ctx, &filenames, "SELECT filename FROM uploads")
	if err != nil {
		return nil, fmt.Errorf("uploadRepo.ListFilenames: %w", err)
	}
	known := make(map[string]bool, len(filenames))
	for _, f := range filenames {
		known[f] = true
	}
	return known, nil
}

// ApplyProcessingResult writes a successful processing pass in one
// transaction: the upload row update and the wholesale line-item
// replacement land together or not at all.
func (r *uploadRepo) ApplyProcessingResult(ctx context.Context, result *port.ProcessingResult) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("uploadRepo.ApplyProcessingResult begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE uploads SET
			raw_text = $1, production_amount = $2, collections_amount = $3,
			clinic_id = $4, status = $5, failure_reason = NULL, updated_at = $6
		 WHERE id = $7`,
		result.RawText, result.ProductionAmount, result.CollectionsAmount,
		result.ClinicID, domain.UploadStatusProcessed, time.Now().UTC(),
		result.UploadID)
	if err != nil {
		return fmt.Errorf("uploadRepo.ApplyProcessingResult update: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrUploadNotFound
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM line_items WHERE upload_id = $1", result.UploadID); err != nil {
		return fmt.Errorf("uploadRepo.ApplyProcessingResult delete items: %w", err)
	}

	now := time.Now().UTC()
	for i := range result.LineItems {
		item := &result.LineItems[i]
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.UploadID = result.UploadID
		item.CreatedAt = now
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO line_items (
				id, upload_id, entry_date, patient_name, tooth_number,
				treatment_code, description, charges, payments, phone_number,
				raw_line, created_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
			item.ID, item.UploadID, item.EntryDate, item.PatientName, item.ToothNumber,
			item.TreatmentCode, item.Description, item.Charges, item.Payments, item.PhoneNumber,
			item.RawLine, item.CreatedAt); err != nil {
			return fmt.Errorf("uploadRepo.ApplyProcessingResult insert item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("uploadRepo.ApplyProcessingResult commit: %w", err)
	}
	return nil
}

func (r *uploadRepo) MarkFailed(ctx context.Context, id uuid.UUID, reason string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE uploads SET status = $1, failure_reason = $2, updated_at = $3 WHERE id = $4`,
		domain.UploadStatusFailed, reason, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("uploadRepo.MarkFailed: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.ErrUploadNotFound
	}
	return nil
}

func (r *uploadRepo) ListLineItems(ctx context.Context, uploadID uuid.UUID) ([]domain.LineItem, error) {
	var items []domain.LineItem
	err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM line_items WHERE upload_id = $1 ORDER BY created_at, id", uploadID)
	if err != nil {
		return nil, fmt.Errorf("uploadRepo.ListLineItems: %w", err)
	}
	return items, nil
}

func (r *uploadRepo) ListProcessedInWindow(ctx context.Context, from, to time.Time) ([]domain.WeeklyEntry, error) {
	var entries []domain.WeeklyEntry
	err := r.db.SelectContext(ctx, &entries,
		`SELECT uploads.clinic_id, clinics.pay_percentage,
		        COALESCE(uploads.production_amount, 0) AS production_amount,
		        COALESCE(uploads.collections_amount, 0) AS collections_amount
		 FROM uploads
		 JOIN clinics ON clinics.id = uploads.clinic_id
		 WHERE uploads.status = $1
		   AND uploads.entry_date >= $2
		   AND uploads.entry_date < $3`,
		domain.UploadStatusProcessed, from, to)
	if err != nil {
		return nil, fmt.Errorf("uploadRepo.ListProcessedInWindow: %w", err)
	}
	return entries, nil
}

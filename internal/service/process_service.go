package service

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"dentrack/internal/config"
	"dentrack/internal/domain"
	"dentrack/internal/parser/lineitem"
	"dentrack/internal/port"
)

// BatchItemResult is the outcome of one upload's processing attempt.
// Failures are data, not errors: a failed item carries its stored reason
// and never aborts the batch.
type BatchItemResult struct {
	UploadID uuid.UUID           `json:"upload_id"`
	Filename string              `json:"filename"`
	Status   domain.UploadStatus `json:"status"`
	Reason   string              `json:"reason,omitempty"`
}

// BatchReport collects the per-item results of a batch run, in the order
// the uploads were selected.
type BatchReport struct {
	Items []BatchItemResult `json:"items"`
}

// Processed returns the number of successfully processed items.
func (r *BatchReport) Processed() int {
	n := 0
	for _, item := range r.Items {
		if item.Status == domain.UploadStatusProcessed {
			n++
		}
	}
	return n
}

// Failed returns the number of failed items.
func (r *BatchReport) Failed() int {
	return len(r.Items) - r.Processed()
}

// ProcessService runs the document pipeline: extraction, attribution,
// amount and line-item parsing, persistence, and file relocation.
type ProcessService interface {
	// ProcessNewUploads attempts every upload currently in status new,
	// oldest first. One upload's failure does not abort the batch.
	ProcessNewUploads(ctx context.Context) (*BatchReport, error)
	// ReprocessUpload redoes the full pipeline for one upload. The
	// boolean reports whether the upload exists at all; a processing
	// failure still returns true and leaves the upload failed.
	ReprocessUpload(ctx context.Context, id uuid.UUID) (bool, *BatchItemResult, error)
}

type processService struct {
	uploads     port.UploadRepository
	clinics     port.ClinicRepository
	clinicSvc   ClinicService
	extractor   port.TextExtractor
	parsers     port.ParserRegistry
	files       config.FilesConfig
	concurrency int
	uploadLocks keyedMutex
}

// NewProcessService creates a new ProcessService implementation.
func NewProcessService(
	uploads port.UploadRepository,
	clinics port.ClinicRepository,
	clinicSvc ClinicService,
	extractor port.TextExtractor,
	parsers port.ParserRegistry,
	files config.FilesConfig,
	concurrency int,
) ProcessService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &processService{
		uploads:     uploads,
		clinics:     clinics,
		clinicSvc:   clinicSvc,
		extractor:   extractor,
		parsers:     parsers,
		files:       files,
		concurrency: concurrency,
	}
}

func (s *processService) ProcessNewUploads(ctx context.Context) (*BatchReport, error) {
	if err := os.MkdirAll(s.files.ProcessedDir, 0o755); err != nil {
		return nil, err
	}

	pending, err := s.uploads.ListByStatus(ctx, domain.UploadStatusNew)
	if err != nil {
		return nil, err
	}

	report := &BatchReport{Items: make([]BatchItemResult, len(pending))}
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i := range pending {
		i := i
		upload := pending[i]
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			path := filepath.Join(s.files.IncomingDir, upload.Filename)
			report.Items[i] = s.processOne(ctx, &upload, path)
		}()
	}
	wg.Wait()

	log.Printf("processService: batch done, %d processed, %d failed",
		report.Processed(), report.Failed())
	return report, nil
}

func (s *processService) ReprocessUpload(ctx context.Context, id uuid.UUID) (bool, *BatchItemResult, error) {
	upload, err := s.uploads.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUploadNotFound) {
			return false, nil, nil
		}
		return false, nil, err
	}

	// A reprocessed file normally lives in the processed dir already;
	// fall back to the incoming dir for uploads that never succeeded.
	path := filepath.Join(s.files.ProcessedDir, upload.Filename)
	if _, err := os.Stat(path); err != nil {
		path = filepath.Join(s.files.IncomingDir, upload.Filename)
	}

	result := s.processOne(ctx, upload, path)
	return true, &result, nil
}

// processOne runs the full pipeline for a single upload. Extraction and
// parsing happen outside any write transaction; persistence is one short
// transactional write at the end. Any failure is converted into a failed
// status with a stored reason.
func (s *processService) processOne(ctx context.Context, upload *domain.Upload, path string) BatchItemResult {
	unlock := s.uploadLocks.Lock(upload.ID.String())
	defer unlock()

	clinicID := upload.ClinicID
	clinicName := ""
	if clinicID != nil {
		clinic, err := s.clinics.GetByID(ctx, *clinicID)
		if err == nil {
			clinicName = clinic.Name
		} else if !errors.Is(err, domain.ErrClinicNotFound) {
			return s.fail(ctx, upload, err.Error())
		}
	}

	rawText, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return s.fail(ctx, upload, err.Error())
	}

	// Attribution only overrides the clinic when a name matches; on a
	// miss the upload keeps whatever clinic it already had.
	attributed, err := s.clinicSvc.Attribute(ctx, rawText)
	if err != nil {
		return s.fail(ctx, upload, err.Error())
	}
	if attributed != nil {
		clinicID = &attributed.ID
		clinicName = attributed.Name
	}

	summary := s.parsers.ForClinic(clinicName).Parse(rawText)
	items := lineitem.Parse(rawText, upload.EntryDate)

	err = s.uploads.ApplyProcessingResult(ctx, &port.ProcessingResult{
		UploadID:          upload.ID,
		ClinicID:          clinicID,
		RawText:           rawText,
		ProductionAmount:  summary.ProductionAmount,
		CollectionsAmount: summary.CollectionsAmount,
		LineItems:         items,
	})
	if err != nil {
		return s.fail(ctx, upload, err.Error())
	}

	s.moveProcessed(path, upload.Filename)

	log.Printf("processService: processed upload %s (%s)", upload.ID, upload.Filename)
	return BatchItemResult{
		UploadID: upload.ID,
		Filename: upload.Filename,
		Status:   domain.UploadStatusProcessed,
	}
}

func (s *processService) fail(ctx context.Context, upload *domain.Upload, reason string) BatchItemResult {
	log.Printf("processService: failed to process %s: %s", upload.Filename, reason)
	if err := s.uploads.MarkFailed(ctx, upload.ID, reason); err != nil {
		log.Printf("processService: marking upload %s failed: %v", upload.ID, err)
	}
	return BatchItemResult{
		UploadID: upload.ID,
		Filename: upload.Filename,
		Status:   domain.UploadStatusFailed,
		Reason:   reason,
	}
}

// moveProcessed relocates the backing file into the processed dir.
// Best-effort: a file already absent from the expected place, or already
// in the processed dir, is left alone.
func (s *processService) moveProcessed(path, filename string) {
	if filepath.Dir(path) == filepath.Clean(s.files.ProcessedDir) {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	dest := filepath.Join(s.files.ProcessedDir, filename)
	if err := os.Rename(path, dest); err != nil {
		log.Printf("processService: moving %s to %s: %v", path, dest, err)
	}
}

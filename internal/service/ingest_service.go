package service

import (
	"context"
	"errors"
	"log"
	"os"
	"regexp"
	"time"

	"dentrack/internal/config"
	"dentrack/internal/domain"
	"dentrack/internal/port"
)

// Filenames like weekly_2024-02-05.png or report-20240205.jpg carry the
// report's nominal entry date.
var filenameDatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`),
	regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`),
}

// IngestService registers report files dropped into the incoming dir.
type IngestService interface {
	// RegisterIncoming scans the incoming dir in sorted order and
	// creates one upload in status new per unregistered file. The
	// nominal entry date is parsed from the filename when present, and
	// the lowest-id clinic becomes the initial owner.
	RegisterIncoming(ctx context.Context) ([]domain.Upload, error)
}

type ingestService struct {
	uploads port.UploadRepository
	clinics port.ClinicRepository
	files   config.FilesConfig
}

// NewIngestService creates a new IngestService implementation.
func NewIngestService(uploads port.UploadRepository, clinics port.ClinicRepository, files config.FilesConfig) IngestService {
	return &ingestService{uploads: uploads, clinics: clinics, files: files}
}

func (s *ingestService) RegisterIncoming(ctx context.Context) ([]domain.Upload, error) {
	if err := os.MkdirAll(s.files.IncomingDir, 0o755); err != nil {
		return nil, err
	}

	known, err := s.uploads.ListFilenames(ctx)
	if err != nil {
		return nil, err
	}

	defaultClinic, err := s.clinics.First(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrClinicNotFound) {
			return nil, domain.ErrNoClinicsConfigured
		}
		return nil, err
	}

	dirEntries, err := os.ReadDir(s.files.IncomingDir)
	if err != nil {
		return nil, err
	}

	var registered []domain.Upload
	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if known[name] {
			continue
		}

		clinicID := defaultClinic.ID
		upload := domain.Upload{
			Filename:  name,
			ClinicID:  &clinicID,
			EntryDate: parseFilenameDate(name),
			Status:    domain.UploadStatusNew,
		}
		if err := s.uploads.Create(ctx, &upload); err != nil {
			if errors.Is(err, domain.ErrDuplicateFilename) {
				continue
			}
			return registered, err
		}
		registered = append(registered, upload)
		log.Printf("ingestService: registered upload %s", name)
	}
	return registered, nil
}

// parseFilenameDate extracts a YYYY-MM-DD or YYYYMMDD date token from a
// filename. A token that is not a real calendar date is ignored.
func parseFilenameDate(filename string) *time.Time {
	for _, pattern := range filenameDatePatterns {
		m := pattern.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		var candidate string
		if len(m) == 2 {
			candidate = m[1]
		} else {
			candidate = m[1] + "-" + m[2] + "-" + m[3]
		}
		t, err := time.Parse("2006-01-02", candidate)
		if err != nil {
			continue
		}
		t = t.UTC()
		return &t
	}
	return nil
}

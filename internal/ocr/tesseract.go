package ocr

import (
	"context"
	"fmt"
	"os"

	"github.com/otiai10/gosseract/v2"

	"dentrack/internal/config"
)

// TesseractExtractor implements port.TextExtractor using the gosseract
// client. A fresh client is created per call; Tesseract clients are not
// safe for concurrent use.
type TesseractExtractor struct {
	languages     []string
	tessdataDir   string
	clientFactory func() *gosseract.Client
}

// NewTesseractExtractor constructs a Tesseract-backed text extractor.
func NewTesseractExtractor(cfg *config.OCRConfig) *TesseractExtractor {
	return &TesseractExtractor{
		languages:     cfg.Languages,
		tessdataDir:   cfg.TessdataDir,
		clientFactory: gosseract.NewClient,
	}
}

// Extract runs OCR over the image at path. Every failure is normalized to
// an *ExtractionError; no retries happen at this layer.
func (e *TesseractExtractor) Extract(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ExtractionError{Path: path, Cause: err}
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", &ExtractionError{Path: path, Cause: fmt.Errorf("image not found")}
		}
		return "", &ExtractionError{Path: path, Cause: err}
	}

	c := e.clientFactory()
	defer func() { _ = c.Close() }()

	if e.tessdataDir != "" {
		if err := c.SetTessdataPrefix(e.tessdataDir); err != nil {
			return "", &ExtractionError{Path: path, Cause: fmt.Errorf("set tessdata prefix: %w", err)}
		}
	}
	if len(e.languages) > 0 {
		if err := c.SetLanguage(e.languages...); err != nil {
			return "", &ExtractionError{Path: path, Cause: fmt.Errorf("set languages: %w", err)}
		}
	}
	if err := c.SetImage(path); err != nil {
		return "", &ExtractionError{Path: path, Cause: fmt.Errorf("set image: %w", err)}
	}

	text, err := c.Text()
	if err != nil {
		return "", &ExtractionError{Path: path, Cause: fmt.Errorf("recognize: %w", err)}
	}
	return text, nil
}

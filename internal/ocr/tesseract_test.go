package ocr_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dentrack/internal/config"
	"dentrack/internal/ocr"
)

func TestTesseractExtractor_Extract_MissingImage(t *testing.T) {
	e := ocr.NewTesseractExtractor(&config.OCRConfig{Languages: []string{"eng"}})

	path := filepath.Join(t.TempDir(), "missing.png")
	_, err := e.Extract(context.Background(), path)

	require.Error(t, err)
	var extErr *ocr.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.Equal(t, path, extErr.Path)
	assert.Contains(t, err.Error(), "image not found")
}

func TestTesseractExtractor_Extract_CancelledContext(t *testing.T) {
	e := ocr.NewTesseractExtractor(&config.OCRConfig{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Extract(ctx, "whatever.png")

	require.Error(t, err)
	var extErr *ocr.ExtractionError
	require.True(t, errors.As(err, &extErr))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractionError_Message(t *testing.T) {
	err := &ocr.ExtractionError{Path: "scan.png", Cause: errors.New("boom")}

	assert.Equal(t, "text extraction failed for scan.png: boom", err.Error())
	assert.EqualError(t, errors.Unwrap(err), "boom")
}

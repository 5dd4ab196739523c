package port

import "context"

// TextExtractor converts a report image on disk into raw text. Failures
// of any kind (engine unavailable, file missing, engine error) surface as
// an *ocr.ExtractionError; retry policy belongs to the caller.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

package ocr

import "fmt"

// ExtractionError is the single failure kind produced by the text
// extraction boundary. Cause distinguishes a missing file from an engine
// failure only in the human-readable message; callers treat all
// extraction failures uniformly.
type ExtractionError struct {
	Path  string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("text extraction failed for %s: %v", e.Path, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

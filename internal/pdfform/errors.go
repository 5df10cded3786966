package pdfform

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds that propagate to the caller.
// Per-page and per-widget failures never surface through these; they degrade
// into ParseResult warnings instead.
var (
	// ErrInputValidation covers missing files, non-PDF extensions, empty
	// files, encrypted documents, and zero-page documents. Surfaced before
	// any extraction begins.
	ErrInputValidation = errors.New("input validation failed")

	// ErrTotalExtractionFailure means every extraction method on every page
	// yielded nothing. Downstream translation has nothing to operate on.
	ErrTotalExtractionFailure = errors.New("no text content could be extracted")

	// ErrReconstruction means the rebuild step could not open or write the
	// template or output. No partial file is emitted.
	ErrReconstruction = errors.New("document reconstruction failed")
)

// validationError wraps a specific validation complaint so callers can
// distinguish bad input from internal failure with errors.Is.
func validationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInputValidation, fmt.Sprintf(format, args...))
}

// extractionError aggregates the last underlying cause of a document-wide
// extraction failure.
func extractionError(cause error) error {
	if cause == nil {
		return ErrTotalExtractionFailure
	}
	return fmt.Errorf("%w: %v", ErrTotalExtractionFailure, cause)
}

// reconstructionError wraps a fatal rebuild failure.
func reconstructionError(stage string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrReconstruction, stage, cause)
}

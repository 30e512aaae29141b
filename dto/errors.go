package dto

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrFileTooLarge = errors.New("file exceeds maximum allowed size")
	ErrNotPDF       = errors.New("file is not a PDF")
)

// ExtractionError reports a PDF that could not be opened or decoded.
type ExtractionError struct {
	Path  string
	Cause error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Path, e.Cause)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// Package parsererror defines the typed errors returned by the extraction
// pipeline. Callers match them with errors.As; every type that wraps a cause
// implements Unwrap.
package parsererror

import (
	"errors"
	"fmt"
)

// DocumentReadError means the PDF bytes could not be turned into text.
type DocumentReadError struct {
	Source string
	Err    error
}

func (e *DocumentReadError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("failed to read document: %v", e.Err)
	}
	return fmt.Sprintf("failed to read document '%s': %v", e.Source, e.Err)
}

func (e *DocumentReadError) Unwrap() error {
	return e.Err
}

// NoExtractableContentError means extraction succeeded but produced only
// whitespace, as with scanned image-only PDFs.
type NoExtractableContentError struct {
	Source string
}

func (e *NoExtractableContentError) Error() string {
	return fmt.Sprintf("no extractable text in document '%s'", e.Source)
}

// NoExpensesFoundError means itemized parsing produced zero records.
type NoExpensesFoundError struct {
	Source string
}

func (e *NoExpensesFoundError) Error() string {
	return fmt.Sprintf("no expenses found in document '%s'", e.Source)
}

// NoTotalFoundError means bill-total parsing produced no record.
type NoTotalFoundError struct {
	Source string
}

func (e *NoTotalFoundError) Error() string {
	return fmt.Sprintf("no bill total found in document '%s'", e.Source)
}

// InvalidFormatError means the input was rejected before extraction, for
// example a file name without a .pdf suffix.
type InvalidFormatError struct {
	FilePath       string
	ExpectedFormat string
	Msg            string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid format for '%s': %s. Expected: %s", e.FilePath, e.Msg, e.ExpectedFormat)
}

// CategorizationError means a categorization backend could not be set up.
// Per-description failures never produce it; they degrade to "other".
type CategorizationError struct {
	Backend string
	Input   string
	Err     error
}

func (e *CategorizationError) Error() string {
	return fmt.Sprintf("categorization backend %s failed on '%s': %v", e.Backend, e.Input, e.Err)
}

func (e *CategorizationError) Unwrap() error {
	return e.Err
}

// IsNothingToImport reports whether err is one of the business-level
// outcomes where the document was readable but yielded no records.
func IsNothingToImport(err error) bool {
	var noExpenses *NoExpensesFoundError
	var noTotal *NoTotalFoundError
	return errors.As(err, &noExpenses) || errors.As(err, &noTotal)
}

// AsReadError attributes err to source. A DocumentReadError without a source
// gets a copy carrying source; any other error is wrapped in one.
func AsReadError(source string, err error) error {
	if err == nil {
		return nil
	}
	var readErr *DocumentReadError
	if errors.As(err, &readErr) {
		if readErr.Source != "" {
			return err
		}
		return &DocumentReadError{Source: source, Err: readErr.Err}
	}
	return &DocumentReadError{Source: source, Err: err}
}

package engine

import (
	"errors"
	"fmt"
	"strings"
)

// RunErrorCode categorizes fatal conditions raised by the stream driver.
type RunErrorCode string

const (
	// ErrCodeDuplicateRecord indicates the archive contains two records
	// matching the same selector. This is a source-data integrity error
	// and is fatal regardless of the duplicate policy.
	ErrCodeDuplicateRecord RunErrorCode = "DUPLICATE_RECORD"

	// ErrCodeMissingSelectors indicates selectors that never matched a
	// record under the strict miss policy.
	ErrCodeMissingSelectors RunErrorCode = "MISSING_SELECTORS"

	// ErrCodeRecordTooLong indicates an input line exceeding the
	// configured maximum width without a terminator.
	ErrCodeRecordTooLong RunErrorCode = "RECORD_TOO_LONG"

	// ErrCodeConflictingModes indicates a configuration that combines
	// fragment fan-out with reject mode.
	ErrCodeConflictingModes RunErrorCode = "CONFLICTING_MODES"
)

// RunError is a fatal stream driver error with structured context for
// diagnostics. The driver returns it to the caller, which owns the single
// point of diagnostic output and process termination.
type RunError struct {
	// Code identifies the error category.
	Code RunErrorCode

	// Message is a human-readable description.
	Message string

	// Header is the offending archive header (duplicate record errors).
	Header string

	// Selectors lists unmatched selector names (missing selector errors).
	Selectors []string
}

// Error implements the error interface.
func (e *RunError) Error() string {
	if e.Header != "" {
		return fmt.Sprintf("%s: %s (header=%s)", e.Code, e.Message, e.Header)
	}
	if len(e.Selectors) > 0 {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Message, strings.Join(e.Selectors, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewDuplicateRecordError creates a RunError for a second archive record
// matching an already-matched selector.
func NewDuplicateRecordError(header string) *RunError {
	return &RunError{
		Code:    ErrCodeDuplicateRecord,
		Message: "duplicate record name in archive",
		Header:  header,
	}
}

// NewMissingSelectorsError creates a RunError for selectors left
// unmatched after the full pass.
func NewMissingSelectorsError(names []string) *RunError {
	return &RunError{
		Code:      ErrCodeMissingSelectors,
		Message:   "selectors not found in archive",
		Selectors: names,
	}
}

// IsMissingSelectors returns true if err is a missing-selectors RunError.
// Uses errors.As to handle wrapped errors.
func IsMissingSelectors(err error) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == ErrCodeMissingSelectors
	}
	return false
}

// IsDuplicateRecord returns true if err is a duplicate-record RunError.
func IsDuplicateRecord(err error) bool {
	var re *RunError
	if errors.As(err, &re) {
		return re.Code == ErrCodeDuplicateRecord
	}
	return false
}

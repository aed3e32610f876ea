package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrInvalidQuery      = errors.New("invalid search query")
	ErrStoreUnavailable  = errors.New("store unavailable")
)

// Circulation errors
var (
	ErrBookUnavailable    = errors.New("book is not available for loan")
	ErrLoanLimitExceeded  = errors.New("borrower has reached maximum number of allowed loans")
	ErrAlreadyReturned    = errors.New("loan already returned")
	ErrConcurrentConflict = errors.New("book was claimed by a concurrent loan")
)

// ValidationError reports every violated field of an input
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates an empty validation error to collect field violations
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a violation for a field
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

// HasErrors reports whether any field violation was recorded
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e.Fields[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

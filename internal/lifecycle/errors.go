package lifecycle

import (
	"errors"
	"fmt"
	"strings"
)

// Engine errors are sentinel values so controllers can map them to HTTP
// statuses without string matching.
var (
	// ErrNotFound covers both "no such record" and "record exists but is not
	// visible to this caller". The two are deliberately indistinguishable so
	// responses never leak existence.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden means the caller is authenticated but lacks the capability
	// for this operation (wrong role, or the order is completed).
	ErrForbidden = errors.New("operation not permitted")
)

// FieldIssue is one itemized validation failure.
type FieldIssue struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries itemized field errors back to the API layer.
type ValidationError struct {
	Issues []FieldIssue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		parts = append(parts, issue.Field+": "+issue.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Issues: []FieldIssue{{Field: field, Message: message}}}
}

// ConflictError wraps a unique-constraint violation with a domain message,
// keeping raw database errors out of responses.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Message)
}

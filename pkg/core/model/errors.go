package model

import "fmt"

// ValidationError indicates the caller's input cannot produce a valid
// write (missing roles, empty pool, duplicate member ids). Surfaced
// before any persistence happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// NewValidationError creates a ValidationError with a formatted reason
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// NotFoundError indicates a ministry, roster, cursor, or entry is absent
type NotFoundError struct {
	Kind string // "ministry", "roster", "cursor", "entry"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ConflictError indicates a precondition was violated: an entry not in
// the expected state, a replacement already on the roster, or a
// versioned write that lost a race. Never retried implicitly.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s", e.Reason)
}

// NewConflictError creates a ConflictError with a formatted reason
func NewConflictError(format string, args ...any) *ConflictError {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// DependencyError indicates an external collaborator (member directory,
// notification façade) failed. For notification side effects it is
// logged and swallowed; for member-name resolution it aborts roster
// generation.
type DependencyError struct {
	Dependency string
	Err        error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("dependency %s failed: %v", e.Dependency, e.Err)
}

func (e *DependencyError) Unwrap() error {
	return e.Err
}

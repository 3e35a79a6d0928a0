package triage

import "fmt"

// ValidationError reports missing or malformed input caught before any
// external service is contacted.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError reports a referenced entity missing from storage.
// Distinct from ValidationError: it implies a caller bug, not user input.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

// ExternalServiceError wraps a failure of the generative model call:
// transport error, empty body, or a body that fails shape validation.
// Always recoverable from the caller's perspective; the session stays
// in its pre-call step.
type ExternalServiceError struct {
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("assessment service failed: %v", e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

func NewExternalServiceError(err error) *ExternalServiceError {
	return &ExternalServiceError{Err: err}
}

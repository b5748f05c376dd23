package complaint

import (
	"errors"
	"fmt"
)

// Expected outcomes surfaced to callers with a stable kind. Anything else
// coming out of the service is a dependency failure: handlers log it and
// answer with a generic server error.
var (
	// ErrNotFound means the referenced complaint does not exist. It is
	// returned before any ownership check runs, so a denied caller learns
	// that a record exists; the same ordering is applied on every route.
	ErrNotFound = errors.New("complaint not found")

	// ErrForbidden means the actor is authenticated but the policy denies
	// the operation.
	ErrForbidden = errors.New("access denied")
)

// ValidationError describes malformed or out-of-bound input on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError builds a field-level validation failure.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

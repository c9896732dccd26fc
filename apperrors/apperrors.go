// Package apperrors defines the closed set of error values the controllers
// return. The Fiber error handler matches on these types to pick the HTTP
// status; anything outside the set is treated as an internal failure.
package apperrors

// ValidationError rejects a request because of missing or invalid input.
// Errors optionally carries one message per offending field or entry.
type ValidationError struct {
	Message string
	Errors  []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidation returns a ValidationError with a single message.
func NewValidation(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NewValidationList returns a ValidationError carrying per-entry messages.
func NewValidationList(message string, errs []string) *ValidationError {
	return &ValidationError{Message: message, Errors: errs}
}

// NotFoundError signals that the addressed resource does not exist or is
// not visible to the caller.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return e.Message
}

// NewNotFound returns a NotFoundError with the given message.
func NewNotFound(message string) *NotFoundError {
	return &NotFoundError{Message: message}
}

package apperrors

import "fmt"

// NotFoundError is returned when a resource with the given ID does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// GenerationError is returned when the description generator fails.
// The message is fixed; the cause is only meant for logs.
type GenerationError struct {
	Cause error
}

func (e *GenerationError) Error() string {
	return "Failed to generate product description"
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

func NewGenerationError(cause error) *GenerationError {
	return &GenerationError{Cause: cause}
}

package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by the domain layer.
var (
	// ErrNotFound indicates that a requested summary does not exist
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidInput indicates that a request carried unusable input
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates that validation checks have failed
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError reports which field of a request is invalid.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidationFailed) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

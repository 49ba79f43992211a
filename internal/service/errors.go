package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors translated by the handlers into HTTP statuses.
var (
	// ErrNotFound maps to 404.
	ErrNotFound = errors.New("resource not found")
	// ErrConflict maps to 409 (duplicate email, duplicate save).
	ErrConflict = errors.New("resource already exists")
	// ErrForbidden maps to 403 (ownership or privilege failure).
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidCredentials maps to 401. The same error covers unknown
	// email and wrong password so neither case is distinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnknownReference maps to 400: a platform or functional-need
	// name that is not in the reference tables.
	ErrUnknownReference = errors.New("unknown reference")
)

// ValidationError names the request fields that are missing or invalid.
// Maps to 400.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError over the given field names.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

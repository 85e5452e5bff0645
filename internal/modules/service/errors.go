package service

import (
	"errors"
	"strings"
)

var (
	ErrNotFound = errors.New("resource not found")
	ErrConflict = errors.New("a project with this slug already exists")
)

// ValidationError carries one human-readable message per failed rule.
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Details, "; ")
}

func newValidationError(details ...string) error {
	return &ValidationError{Details: details}
}

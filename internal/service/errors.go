package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"spendio/internal/repository"
)

var (
	// ErrInvalidCredentials is the single answer for every failed login or
	// token check. Callers must not learn which step failed.
	ErrInvalidCredentials = errors.New("could not validate credentials")
	ErrMissingToken       = errors.New("not authenticated")
	ErrNotFound           = errors.New("resource not found")
)

// ValidationError carries per-field messages that are safe to return.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// ConflictError reports a duplicate of a unique field.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

// BusinessError reports a request that is well formed but not allowed in the
// resource's current state.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string {
	return e.Message
}

// storeError translates a store failure: the repository not-found sentinel
// becomes ErrNotFound, anything else is wrapped with the operation name.
func storeError(op string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

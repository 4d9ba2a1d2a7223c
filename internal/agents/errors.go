package agents

import (
	"errors"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// Domain errors for agent operations.
var (
	ErrNotFound     = errors.New("agent not found")
	ErrDuplicate    = errors.New("agent already exists")
	ErrUnauthorized = errors.New("UNAUTHORIZED")
	ErrForbidden    = errors.New("FORBIDDEN")
	ErrValidation   = errors.New("validation failed")
)

// ValidationError carries a message per invalid field.
// errors.Is(err, ErrValidation) reports true for it.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// FieldErrors returns the field messages of a validation error, or nil.
func FieldErrors(err error) map[string]string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

package clinic

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError agrupa los errores por campo (nombre JSON -> mensaje).
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type NotFoundError struct {
	Entity Entity
	ID     int64
}

func NotFound(e Entity, id int64) *NotFoundError {
	return &NotFoundError{Entity: e, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %d not found", e.Entity.Label(), e.ID)
}

// ConflictError: email duplicado, relación 1-1 ocupada o borrado restringido.
type ConflictError struct {
	Message string
}

func Conflict(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func (e *ConflictError) Error() string { return e.Message }

type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// ErrInvalidCredentials es el único mensaje de login fallido (no revela si el email existe).
var ErrInvalidCredentials = &UnauthorizedError{Message: "Invalid credentials"}

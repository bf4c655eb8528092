package schema

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeCheck is matched by every *TypeCheckError.
	ErrTypeCheck = errors.New("type check failed")

	// ErrConstraintViolation is matched by every *ConstraintViolationError.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrSchemaCombinationConflict is matched by every *CombinationConflictError.
	ErrSchemaCombinationConflict = errors.New("duplicate field")
)

// TypeCheckError represents a structural or kind mismatch between a value and a schema.
type TypeCheckError struct {
	Path   string // Dotted field path
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed, nil when the field is absent
}

func (e *TypeCheckError) Error() string {
	return fmt.Sprintf("field %q: %s", e.Path, e.Reason)
}

func (e *TypeCheckError) Unwrap() error { return ErrTypeCheck }

// ConstraintViolationError reports which named constraint rejected which value.
type ConstraintViolationError struct {
	Path       string
	Constraint string
	Value      any
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("field %q: constraint %q violated by %v", e.Path, e.Constraint, e.Value)
}

func (e *ConstraintViolationError) Unwrap() error { return ErrConstraintViolation }

// CombinationConflictError reports a field name present in more than one input schema.
type CombinationConflictError struct {
	Field  string
	First  string // Name of the schema that contributed the field first
	Second string // Name of the conflicting schema
}

func (e *CombinationConflictError) Error() string {
	return fmt.Sprintf("duplicate field %q in schemas %q and %q", e.Field, e.First, e.Second)
}

func (e *CombinationConflictError) Unwrap() error { return ErrSchemaCombinationConflict }

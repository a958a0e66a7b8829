package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for handlers to map to HTTP status.
var (
	ErrUserExists         = errors.New("user already exists with this email")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidProvider    = errors.New("unsupported third-party provider")
	ErrSessionNotFound    = errors.New("session not found or expired")
	ErrTokenUsed          = errors.New("permission token has already been used")
	ErrTokenExpired       = errors.New("permission token has expired")
	ErrTokenNotFound      = errors.New("permission token not found")
	ErrInsufficientDow    = errors.New("insufficient DoW balance")
	ErrEmailTokenInvalid  = errors.New("invalid or expired email verification token")
)

// ValidationError reports a row or API payload that could not be decoded into
// an entity: the offending field, the expected type, and the raw payload for
// diagnostics. Decoding stops at the first failure.
type ValidationError struct {
	Field    string
	Expected string
	Payload  any
}

func NewValidationError(field, expected string, payload any) *ValidationError {
	return &ValidationError{Field: field, Expected: expected, Payload: payload}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %q: expected %s (payload: %v)", e.Field, e.Expected, e.Payload)
}

// IntegrityError reports more than one row for a keyed lookup. This is a bug
// signal, never a valid business outcome.
type IntegrityError struct {
	Entity string
	Count  int
}

func NewIntegrityError(entity string, count int) *IntegrityError {
	return &IntegrityError{Entity: entity, Count: count}
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("multiple %s rows found for unique key (%d)", e.Entity, e.Count)
}

// ConstraintKind classifies a database constraint violation.
type ConstraintKind string

const (
	ConstraintForeignKey ConstraintKind = "foreign_key"
	ConstraintUnique     ConstraintKind = "unique"
	ConstraintCheck      ConstraintKind = "check"
	ConstraintNotNull    ConstraintKind = "not_null"
)

// ConstraintError surfaces a foreign-key, unique, check or not-null violation
// after the enclosing transaction has been rolled back.
type ConstraintError struct {
	Kind       ConstraintKind
	Table      string
	Constraint string
	Err        error
}

func (e *ConstraintError) Error() string {
	return fmt.Sprintf("%s constraint violated on %s (%s): %v", e.Kind, e.Table, e.Constraint, e.Err)
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// IsConstraint reports whether err is a ConstraintError of the given kind.
func IsConstraint(err error, kind ConstraintKind) bool {
	var ce *ConstraintError
	return errors.As(err, &ce) && ce.Kind == kind
}

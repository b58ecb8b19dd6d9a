// Package shared contains common domain types and errors that are used across
// all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// Entity errors
	ErrAlreadyExists = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// Validation errors
	ErrValidation   = errors.New("validation error")
	ErrInvalidID    = errors.New("invalid ID")
	ErrInvalidInput = errors.New("invalid input")

	// State errors
	ErrInvalidState = errors.New("invalid state")

	// Persistence errors
	ErrStorage          = errors.New("storage error")
	ErrTransaction      = errors.New("transaction failed")
	ErrReferenceMissing = errors.New("referenced entity missing")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "course", "registration", "uow"
	Op      string // Operation that failed, e.g., "Create", "Commit"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Unit of work errors
var (
	ErrUnitOfWorkClosed = NewDomainError("uow", "Stage", ErrInvalidState, "unit of work is closed")
	ErrNilEntity        = NewDomainError("uow", "Stage", ErrInvalidEntity, "entity is nil")
	ErrMissingID        = NewDomainError("uow", "Stage", ErrInvalidID, "entity has no ID")
	ErrUnknownField     = NewDomainError("repository", "Where", ErrInvalidInput, "unknown filter field")
)

// IsAlreadyExists checks if the error is an "already exists" error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidID) ||
		errors.Is(err, ErrInvalidInput)
}

// IsRejectedByConstraint reports whether the store refused a write the
// caller can correct: a missing reference, a duplicate or a failed check.
func IsRejectedByConstraint(err error) bool {
	return errors.Is(err, ErrReferenceMissing) || IsAlreadyExists(err) || IsValidation(err)
}

// IsStorage checks if the error originates in the persistence layer.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage) ||
		errors.Is(err, ErrTransaction) ||
		errors.Is(err, ErrReferenceMissing)
}

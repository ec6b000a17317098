// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrLoad indicates the quote dataset could not be loaded or failed
	// validation. Fatal at startup: the service must not serve queries
	// over a broken dataset.
	ErrLoad = errors.New("dataset load failed")

	// ErrValidation indicates a caller supplied a structurally invalid value.
	ErrValidation = errors.New("validation failed")

	// ErrEmptyCollection indicates an operation that needs at least one
	// record ran against an empty collection. Unreachable once loading
	// succeeded, but callers must handle it rather than panic.
	ErrEmptyCollection = errors.New("empty quote collection")

	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates a required external source is unavailable.
	ErrUnavailable = errors.New("unavailable")
)

// LoadError provides context for dataset load failures.
type LoadError struct {
	Path   string
	Record int // index of the offending record, -1 when not record-specific
	Reason string
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	if e.Record >= 0 {
		return fmt.Sprintf("loading dataset %q: record %d: %s", e.Path, e.Record, e.Reason)
	}

	return fmt.Sprintf("loading dataset %q: %s", e.Path, e.Reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *LoadError) Unwrap() error {
	return ErrLoad
}

// NewLoadError creates a load error for a dataset-level failure.
func NewLoadError(path, reason string) error {
	return &LoadError{Path: path, Record: -1, Reason: reason}
}

// NewRecordLoadError creates a load error pointing at a specific record.
func NewRecordLoadError(path string, record int, reason string) error {
	return &LoadError{Path: path, Record: record, Reason: reason}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// UnavailableError provides context for unavailable errors.
type UnavailableError struct {
	Service string
	Reason  string
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("service %q unavailable: %s", e.Service, e.Reason)
	}

	return fmt.Sprintf("service %q unavailable", e.Service)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *UnavailableError) Unwrap() error {
	return ErrUnavailable
}

// NewUnavailableError creates an unavailable error with context.
func NewUnavailableError(service, reason string) error {
	return &UnavailableError{Service: service, Reason: reason}
}

// IsLoad checks if an error is a dataset load error.
func IsLoad(err error) bool {
	return errors.Is(err, ErrLoad)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsEmptyCollection checks if an error is an empty collection error.
func IsEmptyCollection(err error) bool {
	return errors.Is(err, ErrEmptyCollection)
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnavailable checks if an error is an unavailable error.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

// Package errs defines the error taxonomy shared by services and controllers.
package errs

import (
	"errors"
	"fmt"
)

// ValidationError indicates malformed or missing caller input.
// It is always raised before any store access happens.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// NotFoundError indicates a well-formed request referencing a
// nonexistent user or item.
type NotFoundError struct {
	Resource string // "user" or "item"
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

// NewNotFoundError creates a not-found error for the given resource
func NewNotFoundError(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// UpstreamError indicates a network or parse failure talking to the AI
// or recipe services, after any client-side retries were exhausted.
type UpstreamError struct {
	Service string // "gemini", "mealdb", "image-fetch"
	Err     error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Service, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// NewUpstreamError wraps an upstream failure with the service name
func NewUpstreamError(service string, err error) *UpstreamError {
	return &UpstreamError{Service: service, Err: err}
}

// StoreError indicates an unexpected persistence failure. The underlying
// message is kept for diagnostics and surfaced in 500 responses.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error: %v", e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps a persistence failure
func NewStoreError(err error) *StoreError {
	return &StoreError{Err: err}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsUpstream reports whether err is an UpstreamError
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

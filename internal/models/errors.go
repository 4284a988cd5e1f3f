package models

import (
	"errors"
	"strings"
)

var (
	ErrValidation            = errors.New("validation failed")
	ErrUnauthenticated       = errors.New("unauthenticated")
	ErrForbidden             = errors.New("forbidden")
	ErrNotFound              = errors.New("not found")
	ErrExternalService       = errors.New("external service failure")
	ErrCancellationPending   = errors.New("cancellation already in progress")
	ErrTicketAlreadyRedeemed = errors.New("ticket already redeemed")
	ErrInvalidPayload        = errors.New("invalid qr payload")
)

// ValidationError reports a single bad input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ValidationErrors collects every failing field of one input.
type ValidationErrors []*ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, e := range v {
		parts = append(parts, e.Error())
	}
	return strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError names the missing entity.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return e.Kind + " " + e.ID + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ExternalServiceError wraps a failed call to the QR renderer or the concierge.
// Callers recover from it locally.
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return e.Service + ": " + e.Err.Error()
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

func (e *ExternalServiceError) Is(target error) bool {
	return target == ErrExternalService
}

// Package apperr defines the error taxonomy surfaced by the workflow.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

const (
	OpAnalysis    = "Analysis"
	OpMatching    = "Matching"
	OpCoverLetter = "Cover letter"
	OpCoaching    = "Coaching"

	genericMessage = "an unexpected error occurred"
)

// ValidationError is detected on the client before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// PreconditionError means the action cannot start in the current state.
type PreconditionError struct {
	Message string
}

func (e *PreconditionError) Error() string { return e.Message }

// ServiceError is returned when the remote service answers with a failure status.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	if e.StatusCode == 0 {
		return msg
	}
	return fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
}

// UnknownError wraps anything not recognised as one of the above.
type UnknownError struct {
	Err error
}

func (e *UnknownError) Error() string {
	if e.Err == nil {
		return genericMessage
	}
	return e.Err.Error()
}

func (e *UnknownError) Unwrap() error { return e.Err }

func NewValidation(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func NewPrecondition(message string) error {
	return &PreconditionError{Message: message}
}

// Classify keeps errors of the taxonomy untouched and wraps everything else
// into an UnknownError.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var (
		validation   *ValidationError
		precondition *PreconditionError
		service      *ServiceError
		unknown      *UnknownError
	)

	switch {
	case errors.As(err, &validation),
		errors.As(err, &precondition),
		errors.As(err, &service),
		errors.As(err, &unknown):
		return err
	default:
		return &UnknownError{Err: err}
	}
}

// UserMessage renders the inline message shown to the user for a failed operation.
func UserMessage(operation string, err error) string {
	if err == nil {
		return ""
	}

	var (
		validation   *ValidationError
		precondition *PreconditionError
		service      *ServiceError
	)

	switch {
	case errors.As(err, &precondition):
		return precondition.Message
	case errors.As(err, &validation):
		return fmt.Sprintf("%s failed: %s", operation, validation.Message)
	case errors.As(err, &service):
		return fmt.Sprintf("%s failed: %s", operation, serviceMessage(service))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("%s failed: %s", operation, err.Error())
	default:
		return fmt.Sprintf("%s failed: %s", operation, genericMessage)
	}
}

func serviceMessage(e *ServiceError) string {
	if msg := strings.TrimSpace(e.Message); msg != "" {
		return msg
	}
	if text := http.StatusText(e.StatusCode); text != "" {
		return text
	}
	return genericMessage
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsPrecondition reports whether err is a PreconditionError.
func IsPrecondition(err error) bool {
	var target *PreconditionError
	return errors.As(err, &target)
}

// IsService reports whether err is a ServiceError.
func IsService(err error) bool {
	var target *ServiceError
	return errors.As(err, &target)
}

// IsUnknown reports whether err is an UnknownError.
func IsUnknown(err error) bool {
	var target *UnknownError
	return errors.As(err, &target)
}

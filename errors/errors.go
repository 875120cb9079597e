// Package errors provides standardized error handling for the searchbind layer.
// It includes error classification, standard error variables, and helper
// functions for consistent error wrapping across the binding, registry and
// suggestion packages.
package errors

import (
	"errors"
	"fmt"
)

// ErrorClass represents the classification of errors for handling purposes
type ErrorClass int

const (
	// ErrorInvalid represents errors due to invalid input or configuration.
	// These are surfaced to the caller immediately (fail fast).
	ErrorInvalid ErrorClass = iota
	// ErrorDiscarded represents errors that veto an operation without being
	// surfaced: a rejected value-change gate, a superseded intent. The
	// operation is dropped and state is left untouched.
	ErrorDiscarded
	// ErrorSwallowed represents side-effect failures absorbed at the
	// boundary, such as click-analytics errors. Never escalated.
	ErrorSwallowed
	// ErrorStore represents failures reported by the store during query
	// execution. Delivered through the component's error state property.
	ErrorStore
)

// String returns the string representation of ErrorClass
func (ec ErrorClass) String() string {
	switch ec {
	case ErrorInvalid:
		return "invalid"
	case ErrorDiscarded:
		return "discarded"
	case ErrorSwallowed:
		return "swallowed"
	case ErrorStore:
		return "store"
	default:
		return "unknown"
	}
}

// Standard error variables for common conditions
var (
	// Binding construction errors
	ErrMissingID      = errors.New("missing component id")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrMissingConfig  = errors.New("missing required configuration")
	ErrNotConfigured  = errors.New("search store not configured")
	ErrAlreadyMounted = errors.New("binding already mounted")
	ErrDisposed       = errors.New("binding disposed")

	// Value-change gating errors
	ErrGateRejected = errors.New("value change rejected by gate")
	ErrSuperseded   = errors.New("value change superseded by newer intent")

	// Registry errors
	ErrUnregistered = errors.New("component unregistered")
)

// ClassifiedError wraps an error with its classification
type ClassifiedError struct {
	Class     ErrorClass
	Err       error
	Message   string
	Component string
	Operation string
}

// Error implements the error interface
func (ce *ClassifiedError) Error() string {
	if ce.Message != "" {
		return ce.Message
	}
	return ce.Err.Error()
}

// Unwrap returns the underlying error
func (ce *ClassifiedError) Unwrap() error {
	return ce.Err
}

// IsInvalid checks if an error is due to invalid input or configuration
func IsInvalid(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorInvalid
	}

	return errors.Is(err, ErrInvalidConfig) ||
		errors.Is(err, ErrMissingConfig) ||
		errors.Is(err, ErrMissingID) ||
		errors.Is(err, ErrNotConfigured)
}

// IsDiscarded checks if an error marks a vetoed or superseded operation
func IsDiscarded(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorDiscarded
	}

	return errors.Is(err, ErrGateRejected) || errors.Is(err, ErrSuperseded)
}

// IsStore checks if an error comes from store-side query execution
func IsStore(err error) bool {
	if err == nil {
		return false
	}

	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce.Class == ErrorStore
	}

	return false
}

// Classify returns the error class for an error
func Classify(err error) ErrorClass {
	if IsInvalid(err) {
		return ErrorInvalid
	}
	if IsDiscarded(err) {
		return ErrorDiscarded
	}
	if IsStore(err) {
		return ErrorStore
	}
	return ErrorSwallowed
}

// newClassified creates a new classified error
// This is an internal helper - use the Wrap* functions instead.
func newClassified(class ErrorClass, err error, component, operation, message string) *ClassifiedError {
	return &ClassifiedError{
		Class:     class,
		Err:       err,
		Message:   message,
		Component: component,
		Operation: operation,
	}
}

// Wrap creates a standardized error with context following the pattern:
// "component.method: action failed: %w"
func Wrap(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s.%s: %s failed: %w", component, method, action, err)
}

// WrapInvalid wraps an error as invalid with context
func WrapInvalid(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorInvalid, wrappedErr, component, method, wrappedErr.Error())
}

// WrapDiscarded wraps an error as discarded with context
func WrapDiscarded(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorDiscarded, wrappedErr, component, method, wrappedErr.Error())
}

// WrapStore wraps an error as a store-side failure with context
func WrapStore(err error, component, method, action string) error {
	if err == nil {
		return nil
	}
	wrappedErr := Wrap(err, component, method, action)
	return newClassified(ErrorStore, wrappedErr, component, method, wrappedErr.Error())
}

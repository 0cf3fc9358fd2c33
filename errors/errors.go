// Package errors provides the error taxonomy shared across the pricing engine.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors. Callers classify failures with Is against these.
var (
	// ErrInvalidArgument marks input rejected before any numeric work started:
	// an unrecognized option kind or direction, a malformed date string, a
	// negative reference spot.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidState marks an operation the entity's current state cannot
	// serve: a valuation date past expiry, accessors called before a price
	// has been computed, an aggregate over an empty portfolio.
	ErrInvalidState = errors.New("invalid state")
)

// ArgumentError represents input rejected at a call boundary.
type ArgumentError struct {
	Op      string
	Message string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: invalid argument: %s", e.Op, e.Message)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

// InvalidArgument creates an ArgumentError with a formatted message.
func InvalidArgument(op, format string, args ...interface{}) error {
	return &ArgumentError{Op: op, Message: fmt.Sprintf(format, args...)}
}

// StateError represents an operation invoked against inconsistent state.
type StateError struct {
	Op      string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: invalid state: %s", e.Op, e.Message)
}

func (e *StateError) Unwrap() error {
	return ErrInvalidState
}

// InvalidState creates a StateError with a formatted message.
func InvalidState(op, format string, args ...interface{}) error {
	return &StateError{Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

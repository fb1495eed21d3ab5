package errors

import (
	"errors"
	"fmt"
)

// Client-side call errors

var (
	// ErrInvalidArgument indicates a malformed local call (no request is sent)
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInternal indicates an internal error
	ErrInternal = errors.New("internal error")
)

// Remote call errors

var (
	// ErrAuth indicates the remote rejected the supplied credentials or scope
	ErrAuth = errors.New("authentication rejected")

	// ErrTransport indicates a network, DNS, or TLS failure before a response arrived
	ErrTransport = errors.New("transport failure")

	// ErrTimeout indicates the caller-supplied deadline was exceeded
	ErrTimeout = errors.New("deadline exceeded")

	// ErrDecode indicates the response body did not match the expected schema
	ErrDecode = errors.New("response decode failed")

	// ErrAPI indicates a non-auth remote failure (unexpected status code)
	ErrAPI = errors.New("api error")
)

// Consent-flow errors

var (
	// ErrConsent indicates the OAuth consent redirect carried an error or bad state
	ErrConsent = errors.New("consent flow failed")
)

// Helper functions

// Is checks if err is or wraps target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target type
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

func New(message string) error {
	return errors.New(message)
}

func Newf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}

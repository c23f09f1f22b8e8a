// Package derrors defines coded domain errors shared across services and
// handlers. Services wrap infrastructure failures into coded errors; the
// transport layer translates codes into the response envelope.
package derrors

import (
	"errors"
	"fmt"
)

// Code classifies a domain error for transport translation.
type Code string

const (
	// CodeNotFound signals that a referenced entity (typically the event)
	// does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// CodeRequiredFieldMissing signals that a registration submission omitted
	// a field the event requires. The message names the field.
	CodeRequiredFieldMissing Code = "REQUIRED_FIELD_MISSING"

	// CodeBadRequest covers malformed input at the API boundary.
	CodeBadRequest Code = "BAD_REQUEST"

	// CodeUnauthorized covers missing or invalid caller credentials.
	CodeUnauthorized Code = "UNAUTHORIZED"

	// CodeInternal covers unexpected collaborator failures (storage down,
	// identity provider unreachable). Surfaced to clients as UNCAUGHT.
	CodeInternal Code = "UNCAUGHT"
)

// Error is a domain error carrying a classification code.
type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// New creates a domain error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates a domain error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error, preserving the
// cause for errors.Is/errors.As chains.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// HasCode reports whether err is (or wraps) a domain error with the code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// CodeOf extracts the code from err, defaulting to CodeInternal for errors
// that never passed through this package.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf extracts the client-facing message from err. Non-domain errors
// surface their raw message for diagnostics, per the no-retry error policy.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

package apperrors

import (
	"errors"
	"fmt"
)

// Error codes returned by the engine.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeForbidden        = "FORBIDDEN"
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodeConflict         = "CONFLICT"
	CodeInvalidOperation = "INVALID_OPERATION"
	CodeDependency       = "DEPENDENCY_FAILURE"
)

// Error is a typed application error carrying a stable code.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NotFound reports that a referenced resource does not exist.
func NotFound(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: resource + " not found"}
}

// Forbidden reports an authenticated but unauthorized mutation.
func Forbidden(message string) *Error {
	return &Error{Code: CodeForbidden, Message: message}
}

// InvalidArgument reports a rejected input.
func InvalidArgument(message string) *Error {
	return &Error{Code: CodeInvalidArgument, Message: message}
}

// Conflict reports a uniqueness violation (username/email already taken).
func Conflict(message string) *Error {
	return &Error{Code: CodeConflict, Message: message}
}

// InvalidOperation reports an operation that is never legal, such as self-follow.
func InvalidOperation(message string) *Error {
	return &Error{Code: CodeInvalidOperation, Message: message}
}

// Dependency reports a failure in an external collaborator.
func Dependency(message string, err error) *Error {
	return &Error{Code: CodeDependency, Message: message, Err: err}
}

// CodeOf extracts the application error code, or empty string for plain errors.
func CodeOf(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// Is reports whether err carries the given code.
func Is(err error, code string) bool {
	return CodeOf(err) == code
}

package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a category of export failure.
type ErrorCode string

const (
	// ErrCodeUnavailable indicates the database could not be reached or refused the session.
	ErrCodeUnavailable ErrorCode = "unavailable"
	// ErrCodeQuery indicates the server rejected the export query (missing table, bad column).
	ErrCodeQuery ErrorCode = "query"
	// ErrCodeEncoding indicates a row key could not be encoded as strict UTF-8.
	ErrCodeEncoding ErrorCode = "encoding"
	// ErrCodeFilesystem indicates the output directory could not be used or a file write failed.
	ErrCodeFilesystem ErrorCode = "filesystem"
	// ErrCodeValidation indicates invalid configuration or input.
	ErrCodeValidation ErrorCode = "validation"
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "internal"
	// ErrCodeTimeout indicates a timeout occurred.
	ErrCodeTimeout ErrorCode = "timeout"
	// ErrCodeCanceled indicates the operation was canceled.
	ErrCodeCanceled ErrorCode = "canceled"
)

// AppError represents a structured application error with a code, message, and optional cause.
// It supports error wrapping and unwrapping for use with errors.Is and errors.As.
type AppError struct {
	// Code categorizes the error type
	Code ErrorCode
	// Message is a human-readable error message
	Message string
	// Cause is the underlying error that caused this error (optional)
	Cause error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause, enabling errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates an AppError without a cause.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Newf creates an AppError without a cause using a formatted message.
func Newf(code ErrorCode, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a new Validation error.
func Validation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// Encodingf creates a new Encoding error with formatted message.
func Encodingf(format string, args ...any) *AppError {
	return Newf(ErrCodeEncoding, format, args...)
}

// Wrap wraps an existing error with an AppError, preserving the cause.
func Wrap(err error, code ErrorCode, message string) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an existing error with an AppError and formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...any) *AppError {
	if err == nil {
		return nil
	}
	return Wrap(err, code, fmt.Sprintf(format, args...))
}

// isCode checks if an error has a specific error code.
func isCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}

// IsAppError reports whether err carries the given code anywhere in its chain.
func IsAppError(err error, code ErrorCode) bool {
	return isCode(err, code)
}

// IsUnavailable checks if an error is an Unavailable error.
func IsUnavailable(err error) bool {
	return isCode(err, ErrCodeUnavailable)
}

// IsQuery checks if an error is a Query error.
func IsQuery(err error) bool {
	return isCode(err, ErrCodeQuery)
}

// IsEncoding checks if an error is an Encoding error.
func IsEncoding(err error) bool {
	return isCode(err, ErrCodeEncoding)
}

// IsFilesystem checks if an error is a Filesystem error.
func IsFilesystem(err error) bool {
	return isCode(err, ErrCodeFilesystem)
}

// IsValidation checks if an error is a Validation error.
func IsValidation(err error) bool {
	return isCode(err, ErrCodeValidation)
}

// IsTimeout checks if an error is a Timeout error.
func IsTimeout(err error) bool {
	return isCode(err, ErrCodeTimeout)
}

// IsCanceled checks if an error is a Canceled error.
func IsCanceled(err error) bool {
	return isCode(err, ErrCodeCanceled)
}

// GetCode returns the ErrorCode from an error, or empty string if not an AppError.
func GetCode(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

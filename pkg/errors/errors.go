// Package errors provides custom error types for the application.
// It defines domain-specific errors with error codes so that callers can
// distinguish build-time misuse from serialization and persistence failures.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents application error codes
type ErrorCode string

// Error codes for different error categories
const (
	// General errors (1xxx)
	ErrCodeInternal   ErrorCode = "E1000"
	ErrCodeValidation ErrorCode = "E1001"

	// Structural misuse errors (2xxx) - programmer errors caught fail-fast
	// at the offending call, never deferred to render time
	ErrCodeSectionOwned    ErrorCode = "E2001"
	ErrCodeRowWidth        ErrorCode = "E2002"
	ErrCodeDuplicateColumn ErrorCode = "E2003"
	ErrCodeNoColumns       ErrorCode = "E2004"

	// Serialization errors (3xxx) - an external collaborator failed to
	// produce a usable fragment or chart definition
	ErrCodeChartSpec     ErrorCode = "E3001"
	ErrCodeMarkupInvalid ErrorCode = "E3002"

	// Persistence errors (4xxx)
	ErrCodeWriteFailed       ErrorCode = "E4001"
	ErrCodeUnsupportedFormat ErrorCode = "E4002"
)

// AppError represents an application-level error with code and context
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
	Details any       `json:"details,omitempty"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// IsStructuralMisuse reports whether the error is a programmer error in
// report construction (section ownership, table shape)
func (e *AppError) IsStructuralMisuse() bool {
	switch e.Code {
	case ErrCodeSectionOwned, ErrCodeRowWidth, ErrCodeDuplicateColumn, ErrCodeNoColumns:
		return true
	default:
		return false
	}
}

// IsSerialization reports whether the error originated from a collaborator
// that failed to produce a fragment or chart definition
func (e *AppError) IsSerialization() bool {
	return e.Code == ErrCodeChartSpec || e.Code == ErrCodeMarkupInvalid
}

// IsPersistence reports whether the error occurred while writing output
func (e *AppError) IsPersistence() bool {
	return e.Code == ErrCodeWriteFailed || e.Code == ErrCodeUnsupportedFormat
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with AppError
func Wrap(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details any) *AppError {
	e.Details = details
	return e
}

// Common error constructors for convenience

// ErrInternal creates an internal error
func ErrInternal(message string, err error) *AppError {
	return Wrap(ErrCodeInternal, message, err)
}

// ErrValidation creates a validation error
func ErrValidation(message string) *AppError {
	return New(ErrCodeValidation, message)
}

// ErrSectionOwned creates a structural misuse error for re-adding a section
// that already belongs to a report
func ErrSectionOwned(title string) *AppError {
	return New(ErrCodeSectionOwned, fmt.Sprintf("section %q is already owned by a report", title))
}

// ErrRowWidth creates a structural misuse error for a row whose cell count
// disagrees with the table's column count
func ErrRowWidth(want, got int) *AppError {
	return New(ErrCodeRowWidth, fmt.Sprintf("row has %d cells, table has %d columns", got, want))
}

// ErrDuplicateColumn creates a structural misuse error for a repeated column name
func ErrDuplicateColumn(name string) *AppError {
	return New(ErrCodeDuplicateColumn, fmt.Sprintf("duplicate column name %q", name))
}

// ErrChartSpec creates a serialization error for an unusable chart definition
func ErrChartSpec(message string) *AppError {
	return New(ErrCodeChartSpec, message)
}

// ErrWriteFailed creates a persistence error for a failed file write
func ErrWriteFailed(path string, err error) *AppError {
	return Wrap(ErrCodeWriteFailed, fmt.Sprintf("failed to write %s", path), err)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError attempts to convert an error to AppError
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

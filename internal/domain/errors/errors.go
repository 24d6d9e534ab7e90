// Package errors defines the application error taxonomy. Every error that
// crosses the request boundary implements AppError so the delivery layer can
// translate it into an HTTP status and a user-facing message.
package errors

import (
	"net/http"

	"ratehub/internal/errors"
)

// AppError defines the interface for application-specific errors.
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface.
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error.
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface.
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message.
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code.
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code.
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message.
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information.
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails returns a copy carrying detailed error information.
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types.
var (
	// Credential and session errors. ErrInvalidCredentials deliberately does
	// not reveal which half of the credential pair was wrong, and the message
	// is identical for unknown emails and wrong passwords.
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid email or password",
		"",
	)

	ErrUnauthenticated = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHENTICATED",
		"Authentication required",
		"",
	)

	// Account errors.
	ErrEmailTaken = NewBaseError(
		http.StatusConflict,
		"EMAIL_TAKEN",
		"User with this email already exists",
		"",
	)

	ErrAccountNotFound = NewBaseError(
		http.StatusNotFound,
		"ACCOUNT_NOT_FOUND",
		"Account not found",
		"",
	)

	ErrAccountInactive = NewBaseError(
		http.StatusForbidden,
		"ACCOUNT_INACTIVE",
		"Account has been deactivated",
		"",
	)

	ErrOwnerPending = NewBaseError(
		http.StatusForbidden,
		"OWNER_PENDING",
		"Owner account is pending administrative approval",
		"",
	)

	ErrAdminUndeletable = NewBaseError(
		http.StatusForbidden,
		"ADMIN_UNDELETABLE",
		"Administrator accounts cannot be deleted",
		"",
	)

	// Validation errors.
	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Input validation failed",
		"",
	)

	ErrPasswordPolicy = NewBaseError(
		http.StatusBadRequest,
		"PASSWORD_POLICY",
		"Password must be 8-16 characters with at least one uppercase letter and one special character",
		"",
	)

	ErrInvalidRole = NewBaseError(
		http.StatusBadRequest,
		"INVALID_ROLE",
		"Role must be one of user, owner or admin",
		"",
	)

	ErrInvalidStatus = NewBaseError(
		http.StatusBadRequest,
		"INVALID_STATUS",
		"Status must be one of active, pending or inactive",
		"",
	)

	// Store and rating errors. Cross-owner access is masked as not-found so
	// the existence of another owner's resource never leaks.
	ErrStoreNotFound = NewBaseError(
		http.StatusNotFound,
		"STORE_NOT_FOUND",
		"Store not found",
		"",
	)

	ErrRatingNotFound = NewBaseError(
		http.StatusNotFound,
		"RATING_NOT_FOUND",
		"Rating not found",
		"",
	)

	ErrDuplicateRating = NewBaseError(
		http.StatusConflict,
		"DUPLICATE_RATING",
		"You have already rated this store",
		"",
	)

	ErrInvalidScore = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SCORE",
		"Score must be between 1 and 5",
		"",
	)

	// General errors.
	ErrForbidden = NewBaseError(
		http.StatusForbidden,
		"FORBIDDEN",
		"Permission denied",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrConflict = NewBaseError(
		http.StatusConflict,
		"CONFLICT",
		"Resource conflict",
		"",
	)

	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error",
		"",
	)
)

// DatabaseExecuteError represents a database execution error, implementing
// the AppError interface.
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error.
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface.
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed").Error()
}

// HTTPCode returns the HTTP status code.
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code.
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message.
func (e *DatabaseExecuteError) Message() string {
	return "Database operation failed"
}

// Details returns detailed error information.
func (e *DatabaseExecuteError) Details() string {
	return e.details
}

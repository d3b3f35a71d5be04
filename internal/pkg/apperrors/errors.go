package apperrors

import "errors"

// Common errors
var (
	// Authentication errors
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrSessionNotFound    = errors.New("session not found")

	// Authorization errors
	ErrForbidden = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrMalformedInput   = errors.New("malformed input")

	// Storage errors
	ErrStorageFailure = errors.New("storage failure")
)

// Account errors
var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrProtectedAccount  = errors.New("account is protected")
)

// Student errors
var (
	ErrStudentNotFound = errors.New("student not found")
)

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewNotFoundError creates a custom not-found error with a message
func NewNotFoundError(err error, message string) error {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// NewMalformedInputError creates a custom malformed-input error with a message
func NewMalformedInputError(message string) error {
	return &CustomError{
		Err:     ErrMalformedInput,
		Message: message,
	}
}

// NewStorageError wraps a low-level persistence or file I/O failure
func NewStorageError(err error, message string) error {
	return &CustomError{
		Err:     errors.Join(ErrStorageFailure, err),
		Message: message,
	}
}

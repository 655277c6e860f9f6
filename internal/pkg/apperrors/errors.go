package apperrors

import "errors"

// Sentinel errors shared across services and translated to HTTP status codes
// by the error middleware.
var (
	// Authentication / authorization
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRoleMismatch       = errors.New("account role mismatch")

	// Validation
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidID        = errors.New("invalid id")

	// Resources
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrStudentCodeExists  = errors.New("student ID already exists")
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrExamNotFound       = errors.New("exam not found")
	ErrStudentNotFound    = errors.New("student not found")
	ErrClassNotFound      = errors.New("class not found")
	ErrTeacherNotFound    = errors.New("teacher not found")
	ErrBlobNotFound       = errors.New("file not found")

	// Upload / storage
	ErrUpload = errors.New("upload failed")

	// External services
	ErrAssistantUnavailable = errors.New("assistant unavailable")
)

// CustomError carries a caller-facing message alongside a sentinel so the
// middleware can pick the status from the sentinel and the body from Message.
type CustomError struct {
	Err     error
	Message string
}

func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewValidationError wraps ErrValidationFailed with a specific message.
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// NewNotFoundError wraps ErrNotFound with a specific message.
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrNotFound, Message: message}
}

// NewForbiddenError wraps ErrForbidden with a specific message.
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrForbidden, Message: message}
}

// NewConflictError wraps ErrConflict with a specific message.
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewUnauthorizedError wraps ErrUnauthorized with a specific message.
func NewUnauthorizedError(message string) error {
	return &CustomError{Err: ErrUnauthorized, Message: message}
}

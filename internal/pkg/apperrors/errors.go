package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrInvalidEmail     = errors.New("invalid email")
	ErrInvalidPassword  = errors.New("invalid password")

	// Profile errors
	ErrProfileNotFound    = errors.New("profile not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// Course errors
var (
	ErrCourseNotFound    = errors.New("course not found")
	ErrAccessCodeExists  = errors.New("access code already in use")
	ErrInvalidAccessCode = errors.New("invalid access code")
	ErrAlreadyMember     = errors.New("already a member of this course")
	ErrNotCourseMember   = errors.New("not a member of this course")
	ErrCourseFull        = errors.New("course member limit reached")
	ErrCourseNotJoinable = errors.New("course is not accepting members")
)

// Note errors
var (
	ErrNoteNotFound    = errors.New("note not found")
	ErrVersionConflict = errors.New("note was modified by a concurrent update")
)

// View and group errors
var (
	ErrViewNotFound       = errors.New("view not found")
	ErrMainViewExists     = errors.New("course already has a main view")
	ErrGroupNotFound      = errors.New("group not found")
	ErrAlreadyGroupMember = errors.New("already a member of this group")
	ErrGroupFull          = errors.New("group member limit reached")
	ErrGroupClosed        = errors.New("group does not accept self-joining")
)

// Teacher application errors
var (
	ErrApplicationNotFound = errors.New("teacher application not found")
	ErrApplicationReviewed = errors.New("teacher application already reviewed")
	ErrApplicationPending  = errors.New("a pending application already exists")
)

// Notification errors
var (
	ErrNotificationNotFound = errors.New("notification not found")
)

// AI adapter errors
var (
	ErrUpstreamFailure = errors.New("analysis service failure")
)

// CustomError carries additional context alongside a sentinel error.
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements the error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with an underlying sentinel
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// NewNotFoundError creates a resource-not-found error with a message
func NewNotFoundError(message string) error {
	return &CustomError{Err: ErrResourceNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message
func NewConflictError(message string) error {
	return &CustomError{Err: ErrConflict, Message: message}
}

// NewForbiddenError creates a permission-denied error with a message
func NewForbiddenError(message string) error {
	return &CustomError{Err: ErrPermissionDenied, Message: message}
}

// NewValidationError creates a validation error with a message
func NewValidationError(message string) error {
	return &CustomError{Err: ErrValidationFailed, Message: message}
}

// Is returns whether target or any of errList matches err
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}
	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

package apperrors

import "errors"

// Category errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPermissionDenied = errors.New("permission denied")
	ErrValidationFailed = errors.New("validation failed")
	ErrExternalService  = errors.New("external service error")
)

// User Errors
var (
	ErrUserNotFound           = errors.New("user not found")
	ErrEmailAlreadyExists     = errors.New("email already exists")
	ErrApplicationNotPending  = errors.New("application not pending or already approved/rejected")
	ErrApplicationNotAllowed  = errors.New("only students can apply for the teacher role")
	ErrUserAlreadyAdmin       = errors.New("user not found or already admin")
	ErrInvalidSearchPattern   = errors.New("invalid search pattern")
	ErrApplicationFieldsEmpty = errors.New("experience, title, and category are required")
)

// Class Errors
var (
	ErrClassNotFound      = errors.New("class not found")
	ErrInvalidClassID     = errors.New("invalid class id")
	ErrInvalidClassStatus = errors.New("invalid status value, allowed: pending, approved, rejected")
	ErrNotClassOwner      = errors.New("class belongs to another teacher")
)

// Enrollment Errors
var (
	ErrAlreadyEnrolled   = errors.New("already enrolled in this class")
	ErrInvalidAmount     = errors.New("invalid payment amount")
	ErrMissingPaymentID  = errors.New("payment intent id is required")
	ErrPaymentIncomplete = errors.New("payment not completed")
	ErrStudentMismatch   = errors.New("student email does not match the authenticated user")
)

// Coursework Errors
var (
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrInvalidAssignmentID = errors.New("invalid assignment id")
	ErrInvalidDeadline     = errors.New("deadline must be an RFC3339 timestamp")
)

// Feedback Errors
var (
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewExternalServiceError wraps a payment or identity provider failure, keeping the
// provider's message for the response body.
func NewExternalServiceError(cause error) error {
	return &CustomError{
		Err:     ErrExternalService,
		Message: cause.Error(),
		Cause:   cause,
	}
}

// Is returns whether target matches any of the errors in errList
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

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Cause   error
	Details map[string]interface{}
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

// Unwrap exposes both the category sentinel and the underlying cause.
func (e *CustomError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// NewCustomError creates a CustomError with underlying error
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

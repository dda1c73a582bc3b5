package apierror

import "net/http"

// Error is a structured API error carried from services up to the HTTP
// edge, where StatusCode decides the response status.
type Error struct {
	StatusCode int    `json:"-"`
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// BadRequest creates a 400 error for malformed input.
func BadRequest(message string) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Code: "BAD_REQUEST", Message: message}
}

// Validation creates a 400 error for a failed form constraint.
func Validation(message string) *Error {
	return &Error{StatusCode: http.StatusBadRequest, Code: "VALIDATION_ERROR", Message: message}
}

// Unauthorized creates a 401 error for missing or invalid credentials.
func Unauthorized(message string) *Error {
	if message == "" {
		message = "authentication required"
	}
	return &Error{StatusCode: http.StatusUnauthorized, Code: "UNAUTHORIZED", Message: message}
}

// Forbidden creates a 403 error for an insufficient role claim.
func Forbidden(message string) *Error {
	if message == "" {
		message = "access denied"
	}
	return &Error{StatusCode: http.StatusForbidden, Code: "FORBIDDEN", Message: message}
}

// NotFound creates a 404 error.
func NotFound(message string) *Error {
	if message == "" {
		message = "resource not found"
	}
	return &Error{StatusCode: http.StatusNotFound, Code: "NOT_FOUND", Message: message}
}

// Conflict creates a 409 error, used for stock violations at checkout.
func Conflict(message string) *Error {
	return &Error{StatusCode: http.StatusConflict, Code: "CONFLICT", Message: message}
}

// Internal creates a 500 error.
func Internal(message string) *Error {
	if message == "" {
		message = "an unexpected error occurred"
	}
	return &Error{StatusCode: http.StatusInternalServerError, Code: "INTERNAL_ERROR", Message: message}
}

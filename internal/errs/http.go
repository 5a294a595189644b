package errs

import (
	"net/http"
)

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// errors is the optional list of field errors (validation errors).
//
// This is designed for "you sent garbage" cases: malformed JSON, a body
// that is not an object, a field that fails validation.
func NewBadRequestError(message string, errors []FieldError) *HTTPError {
	return &HTTPError{
		// http.StatusText(400) => "Bad Request" => "BAD_REQUEST"
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest)),
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
//
// Records that do not exist are not 404s (get-one answers 200 with null
// data); this is used for unknown routes.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewTooManyRequestsError creates a 429 HTTPError for rate-limited clients.
func NewTooManyRequestsError(message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusTooManyRequests)),
		Message: message,
		Status:  http.StatusTooManyRequests,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the real internal error.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}

// NewStoreError creates a 500 HTTPError for a failed store operation.
//
// message is the fixed, route-specific text ("Failed to retrieve project")
// and cause the driver error, reported to the client as the "error" field.
func NewStoreError(message, code string, cause error) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
		Status:  http.StatusInternalServerError,
		Cause:   cause,
	}
}

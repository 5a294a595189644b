package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "title", "error": "must be at most 256 characters" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "title").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the main custom error type for API responses.
//
// It implements the `error` interface via Error().
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST", "PROJECT_INVALID_ID").
//   - Message: human-friendly message, used as the envelope "message".
//   - Status: HTTP status code.
//   - Errors: list of per-field errors (validation).
//   - Cause: the underlying error. Its text becomes the envelope "error".
type HTTPError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors,omitempty"`

	// Cause is never serialized directly; see Detail.
	Cause error `json:"-"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
//
// It returns the Message, and the cause after a colon when one is set,
// so logging the error shows both.
func (e *HTTPError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes Cause to errors.Is / errors.As.
func (e *HTTPError) Unwrap() error {
	return e.Cause
}

// Is customizes how errors.Is(...) treats HTTPError.
//
// It returns true if `target` is also a *HTTPError. This does NOT compare
// Code/Status/etc, only the type.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// Detail is the text reported in the envelope "error" field: the cause's
// message when there is one, otherwise the message itself.
func (e *HTTPError) Detail() string {
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return e.Message
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
// Example:
//
//	"Bad Request" -> "BAD_REQUEST"
//
// Used to create stable machine-readable error codes from HTTP status text.
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}

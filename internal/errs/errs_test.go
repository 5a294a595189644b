package errs

import (
	"errors"
	"net/http"
	"testing"
)

func TestStoreErrorUnwrapsCause(t *testing.T) {
	cause := errors.New("server selection timeout")
	err := NewStoreError("Failed to retrieve projects", "PROJECT_TIMEOUT", cause)

	if err.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", err.Status)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
	if err.Detail() != "server selection timeout" {
		t.Errorf("detail = %q", err.Detail())
	}
	if err.Error() != "Failed to retrieve projects: server selection timeout" {
		t.Errorf("Error() = %q", err.Error())
	}

	var httpErr *HTTPError
	if !errors.As(error(err), &httpErr) || httpErr.Code != "PROJECT_TIMEOUT" {
		t.Errorf("errors.As did not recover the HTTPError: %+v", httpErr)
	}
}

func TestDetailWithoutCause(t *testing.T) {
	err := NewBadRequestError("Invalid request body", nil)
	if err.Detail() != "Invalid request body" {
		t.Errorf("detail = %q", err.Detail())
	}
	if err.Code != "BAD_REQUEST" {
		t.Errorf("code = %q", err.Code)
	}
}

func TestConstructorsCodes(t *testing.T) {
	tests := []struct {
		err        *HTTPError
		wantStatus int
		wantCode   string
	}{
		{NewBadRequestError("x", nil), http.StatusBadRequest, "BAD_REQUEST"},
		{NewNotFoundError("Route not found"), http.StatusNotFound, "NOT_FOUND"},
		{NewTooManyRequestsError("slow down"), http.StatusTooManyRequests, "TOO_MANY_REQUESTS"},
		{NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		if tt.err.Status != tt.wantStatus || tt.err.Code != tt.wantCode {
			t.Errorf("%q: status %d code %q, want %d %q", tt.err.Message, tt.err.Status, tt.err.Code, tt.wantStatus, tt.wantCode)
		}
	}
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	tests := map[string]string{
		"Bad Request":       "BAD_REQUEST",
		"Too Many Requests": "TOO_MANY_REQUESTS",
		"":                  "",
	}
	for in, want := range tests {
		if got := MakeUpperCaseWithUnderscores(in); got != want {
			t.Errorf("MakeUpperCaseWithUnderscores(%q) = %q, want %q", in, got, want)
		}
	}
}

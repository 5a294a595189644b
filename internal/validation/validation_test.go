package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Sakibahmed2/portfolio-backend/internal/errs"
	"github.com/labstack/echo/v4"
)

type createThingRequest struct {
	Name string `json:"name" validate:"required,max=5"`
	Size int    `json:"size" validate:"min=1"`
}

func (r *createThingRequest) Validate() error {
	return Struct(r)
}

type customRequest struct{}

func (r *customRequest) Validate() error {
	return errors.New("must be a JSON object")
}

func newContext(body, contentType string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func asHTTPError(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("expected *errs.HTTPError, got %T (%v)", err, err)
	}
	return httpErr
}

func TestBindAndValidateSuccess(t *testing.T) {
	req := &createThingRequest{}
	c := newContext(`{"name":"go","size":2}`, echo.MIMEApplicationJSON)

	if err := BindAndValidate(c, req); err != nil {
		t.Fatalf("BindAndValidate: %v", err)
	}
	if req.Name != "go" || req.Size != 2 {
		t.Errorf("req = %+v", req)
	}
}

func TestBindAndValidateBindErrors(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
	}{
		{"malformed json", `{"name":`, echo.MIMEApplicationJSON},
		{"wrong type", `{"name":42}`, echo.MIMEApplicationJSON},
		{"unsupported media type", `name=go`, echo.MIMETextPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BindAndValidate(newContext(tt.body, tt.contentType), &createThingRequest{})
			httpErr := asHTTPError(t, err)

			if httpErr.Status != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", httpErr.Status)
			}
			if httpErr.Message != "Invalid request body" {
				t.Errorf("message = %q", httpErr.Message)
			}
			if httpErr.Cause == nil || httpErr.Detail() == "" {
				t.Error("expected the decoder error as cause")
			}
		})
	}
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	err := BindAndValidate(newContext(`{"name":"toolong","size":0}`, echo.MIMEApplicationJSON), &createThingRequest{})
	httpErr := asHTTPError(t, err)

	if httpErr.Status != http.StatusBadRequest {
		t.Errorf("status = %d", httpErr.Status)
	}

	got := map[string]string{}
	for _, fe := range httpErr.Errors {
		got[fe.Field] = fe.Error
	}
	if got["name"] != "must not exceed 5 characters" {
		t.Errorf("name error = %q", got["name"])
	}
	if got["size"] != "must be at least 1" {
		t.Errorf("size error = %q", got["size"])
	}
}

func TestBindAndValidatePlainValidateError(t *testing.T) {
	err := BindAndValidate(newContext("", ""), &customRequest{})
	httpErr := asHTTPError(t, err)

	if len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "body" || httpErr.Errors[0].Error != "must be a JSON object" {
		t.Errorf("errors = %+v", httpErr.Errors)
	}
}

func TestBindAndValidateEmptyBody(t *testing.T) {
	req := &createThingRequest{}
	err := BindAndValidate(newContext("", echo.MIMEApplicationJSON), req)

	// Nothing is bound, so the required rule fires.
	httpErr := asHTTPError(t, err)
	if len(httpErr.Errors) == 0 {
		t.Error("expected field errors for an empty body")
	}
}

package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Sakibahmed2/portfolio-backend/internal/config"
	"github.com/Sakibahmed2/portfolio-backend/internal/server"
	"github.com/Sakibahmed2/portfolio-backend/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func newTestServer() *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Primary:       config.Primary{Env: "test"},
			Observability: config.DefaultObservabilityConfig(),
		},
		Logger: &logger,
	}
}

func TestNewDocumentMessages(t *testing.T) {
	got := NewDocumentMessages("projects")
	want := DocumentMessages{
		Created:        "Project created successfully",
		Listed:         "Projects retrieved successfully",
		Retrieved:      "Project retrieved successfully",
		Updated:        "Project updated successfully",
		Deleted:        "Project deleted successfully",
		CreateFailed:   "Failed to create project",
		ListFailed:     "Failed to retrieve projects",
		RetrieveFailed: "Failed to retrieve project",
		UpdateFailed:   "Failed to update project",
		DeleteFailed:   "Failed to delete project",
	}
	if got != want {
		t.Errorf("NewDocumentMessages(projects) =\n%+v\nwant\n%+v", got, want)
	}

	if blogs := NewDocumentMessages("blogs"); blogs.Listed != "Blogs retrieved successfully" || blogs.DeleteFailed != "Failed to delete blog" {
		t.Errorf("blogs messages = %+v", blogs)
	}
}

type echoRequest struct {
	Value string `json:"value" validate:"required"`
}

func (r *echoRequest) Validate() error {
	return validation.Struct(r)
}

func TestHandleWrapsResultInEnvelope(t *testing.T) {
	h := NewHandler(newTestServer())
	e := echo.New()
	e.POST("/echo", Handle(h, func(c echo.Context, req *echoRequest) (string, error) {
		return req.Value, nil
	}, http.StatusAccepted, "Echoed"))

	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"value":"hi"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d", rec.Code)
	}
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatal(err)
	}
	if !env.Success || env.Message != "Echoed" || env.Data != "hi" {
		t.Errorf("envelope = %+v", env)
	}
}

func TestHandleAllocatesRequestPerCall(t *testing.T) {
	h := NewHandler(newTestServer())
	e := echo.New()
	e.POST("/echo", Handle(h, func(c echo.Context, req *echoRequest) (string, error) {
		// Give concurrent requests a chance to interleave.
		time.Sleep(time.Millisecond)
		return req.Value, nil
	}, http.StatusOK, "ok"))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(value string) {
			defer wg.Done()

			req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"value":"`+value+`"}`))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			var env Envelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Error(err)
				return
			}
			if env.Data != value {
				t.Errorf("got %v, want %s", env.Data, value)
			}
		}(strings.Repeat("v", i+1))
	}
	wg.Wait()
}

func TestHandleReturnsValidationError(t *testing.T) {
	h := NewHandler(newTestServer())
	called := false
	fn := Handle(h, func(c echo.Context, req *echoRequest) (string, error) {
		called = true
		return "", nil
	}, http.StatusOK, "ok")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := echo.New().NewContext(req, httptest.NewRecorder())

	if err := fn(c); err == nil {
		t.Fatal("expected a validation error")
	}
	if called {
		t.Error("handler must not run when validation fails")
	}
}

func runHealth(t *testing.T, h *HealthHandler) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	if err := h.CheckHealth(c); err != nil {
		t.Fatalf("CheckHealth: %v", err)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	return rec.Code, body
}

func TestCheckHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name       string
		checks     []healthCheck
		wantStatus int
		wantState  string
	}{
		{
			name:       "all healthy",
			checks:     []healthCheck{{name: "database", required: true, ping: ok}, {name: "redis", ping: ok}},
			wantStatus: http.StatusOK,
			wantState:  "healthy",
		},
		{
			name:       "database down",
			checks:     []healthCheck{{name: "database", required: true, ping: down}, {name: "redis", ping: ok}},
			wantStatus: http.StatusServiceUnavailable,
			wantState:  "unhealthy",
		},
		{
			name:       "redis down is reported only",
			checks:     []healthCheck{{name: "database", required: true, ping: ok}, {name: "redis", ping: down}},
			wantStatus: http.StatusOK,
			wantState:  "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(newTestServer())
			h.checks = tt.checks

			status, body := runHealth(t, h)
			if status != tt.wantStatus {
				t.Errorf("status = %d, want %d", status, tt.wantStatus)
			}
			if body["status"] != tt.wantState {
				t.Errorf("state = %v, want %s", body["status"], tt.wantState)
			}

			checks, _ := body["checks"].(map[string]interface{})
			if len(checks) != len(tt.checks) {
				t.Errorf("checks = %v", checks)
			}
		})
	}
}

func TestHealthChecksFollowConfig(t *testing.T) {
	s := newTestServer()
	s.Config.Observability.HealthChecks.Enabled = false

	if h := NewHealthHandler(s); len(h.checks) != 0 {
		t.Errorf("disabled health checks built %d probes", len(h.checks))
	}
}

func TestLiveness(t *testing.T) {
	h := NewHealthHandler(newTestServer())
	h.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	if err := h.Liveness(c); err != nil {
		t.Fatal(err)
	}

	var body LivenessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Message != LivenessMessage || body.Timestamp != "2024-03-01T12:00:00Z" {
		t.Errorf("body = %+v", body)
	}
}

func TestServeOpenAPIUI(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "openapi.html"), []byte("<html>docs</html>"), 0o644); err != nil {
		t.Fatal(err)
	}

	h := NewOpenAPIHandler(newTestServer())
	h.dir = dir

	rec := httptest.NewRecorder()
	c := echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), rec)
	if err := h.ServeOpenAPIUI(c); err != nil {
		t.Fatal(err)
	}
	if rec.Body.String() != "<html>docs</html>" {
		t.Errorf("body = %q", rec.Body.String())
	}
	if rec.Header().Get("Cache-Control") != "no-cache" {
		t.Error("docs page must not be cached")
	}

	h.dir = filepath.Join(dir, "missing")
	if err := h.ServeOpenAPIUI(echo.New().NewContext(httptest.NewRequest(http.MethodGet, "/docs", nil), httptest.NewRecorder())); err == nil {
		t.Error("expected an error for a missing template")
	}
}

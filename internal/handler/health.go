package handler

// HealthHandler exposes "system" endpoints that external systems can use to verify
// the service is alive and its dependencies are reachable.
//
//   - GET /        liveness: answers as long as the process serves HTTP
//   - GET /status  readiness: pings MongoDB and, when configured, Redis
import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Sakibahmed2/portfolio-backend/internal/lib/cache"
	"github.com/Sakibahmed2/portfolio-backend/internal/middleware"
	"github.com/Sakibahmed2/portfolio-backend/internal/server"
	"github.com/labstack/echo/v4"
)

// LivenessMessage is the fixed text of GET /.
const LivenessMessage = "Server is running smoothly"

// LivenessResponse is the body of GET /.
type LivenessResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// healthCheck is one dependency probe. A failing required check turns the
// whole report unhealthy (503); an optional one is only reported.
type healthCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

// HealthHandler embeds the base Handler to reuse shared server dependencies.
type HealthHandler struct {
	Handler
	checks []healthCheck
	now    func() time.Time
}

// NewHealthHandler builds the probes enabled in observability.health_checks.
// Redis is probed only when it is configured.
func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler: NewHandler(s),
		now:     time.Now,
	}

	hc := s.Config.Observability.HealthChecks
	if !hc.Enabled {
		return h
	}

	if hc.Has("database") && s.DB != nil {
		h.checks = append(h.checks, healthCheck{
			name:     "database",
			required: true,
			ping:     s.DB.Ping,
		})
	}

	if hc.Has("redis") && s.Redis != nil {
		h.checks = append(h.checks, healthCheck{
			name: "redis",
			ping: func(ctx context.Context) error {
				return cache.Ping(ctx, s.Redis)
			},
		})
	}

	return h
}

// Liveness answers GET / with a status message and the current time.
func (h *HealthHandler) Liveness(c echo.Context) error {
	return c.JSON(http.StatusOK, LivenessResponse{
		Message:   LivenessMessage,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	})
}

// CheckHealth returns system health status and dependency checks.
//
// Response includes:
// - overall status (healthy/unhealthy)
// - timestamp (UTC)
// - environment (from config)
// - checks map (database, redis)
//
// It returns:
// - 200 OK if every required check passes
// - 503 Service Unavailable otherwise
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{}, len(h.checks))
	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   h.now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	isHealthy := true
	timeout := h.server.Config.Observability.HealthChecks.Timeout

	for _, check := range h.checks {
		checkStart := time.Now()

		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		err := check.ping(ctx)
		cancel()

		responseTime := time.Since(checkStart)

		if err != nil {
			checks[check.name] = map[string]interface{}{
				"status":        "unhealthy",
				"response_time": responseTime.String(),
				"error":         err.Error(),
			}

			if check.required {
				isHealthy = false
			}

			logger.Error().
				Err(err).
				Str("check", check.name).
				Dur("response_time", responseTime).
				Msg("health check failed")

			h.recordHealthCheckError(map[string]interface{}{
				"check_type":       check.name,
				"operation":        "health_check",
				"error_type":       check.name + "_unhealthy",
				"response_time_ms": responseTime.Milliseconds(),
				"error_message":    err.Error(),
			})
			continue
		}

		checks[check.name] = map[string]interface{}{
			"status":        "healthy",
			"response_time": responseTime.String(),
		}

		logger.Debug().
			Str("check", check.name).
			Dur("response_time", responseTime).
			Msg("health check passed")
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError(map[string]interface{}{
			"check_type":        "overall",
			"operation":         "health_check",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

// recordHealthCheckError sends a HealthCheckError custom event when New Relic is on.
func (h *HealthHandler) recordHealthCheckError(attrs map[string]interface{}) {
	if app := h.server.LoggerService.GetApplication(); app != nil {
		app.RecordCustomEvent("HealthCheckError", attrs)
	}
}

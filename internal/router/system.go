package router

import (
	"github.com/Sakibahmed2/portfolio-backend/internal/handler"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints that are not part of the
// record API: liveness, dependency health, docs UI and its static assets.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/", h.Health.Liveness)

	r.GET("/status", h.Health.CheckHealth)

	// openapi.json and openapi.html.
	r.Static("/static", handler.StaticDir)

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}

// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers
package router

import (
	"net/http"

	"github.com/Sakibahmed2/portfolio-backend/internal/handler"
	"github.com/Sakibahmed2/portfolio-backend/internal/middleware"
	"github.com/Sakibahmed2/portfolio-backend/internal/server"
	"github.com/labstack/echo/v4"
)

// APIPrefix is the mount point of the record routes.
const APIPrefix = "/api/v1"

// NewRouter builds the Echo instance with global middleware, system routes
// and the versioned API.
//
// Middleware order matters:
//  1. RequestID first so every later layer sees the id
//  2. New Relic, so the transaction exists for the context logger
//  3. ContextEnhancer, then EnhanceTracing
//  4. Metrics, so rejected and failed requests are counted too
//  5. CORS / Secure / rate limiting
//  6. RequestLogger, then Recover innermost so panics are logged as 500s
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Tracing.EnhanceTracing(),
		mw.Metrics.Collect(),
		mw.Global.CORS(),
		mw.Global.Secure(),
		mw.RateLimit.Limit(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
	)

	registerSystemRoutes(router, h)
	router.GET("/metrics", mw.Metrics.Handler())

	v1 := router.Group(APIPrefix)
	registerSkillRoutes(v1, h.Skills)
	registerDocumentRoutes(v1.Group("/projects"), h.Projects)
	registerDocumentRoutes(v1.Group("/blogs"), h.Blogs)

	return router
}

func registerSkillRoutes(g *echo.Group, h *handler.SkillHandler) {
	g.POST("/skills", handler.Handle(h.Handler, h.CreateSkill, http.StatusCreated, "Skills created successfully"))
	g.GET("/skills", handler.Handle(h.Handler, h.ListSkills, http.StatusOK, "Skills retrieved successfully"))
}

// registerDocumentRoutes mounts create/list/get/update/delete for one
// open-document collection.
func registerDocumentRoutes(g *echo.Group, h *handler.DocumentHandler) {
	msg := h.Messages

	g.POST("", handler.Handle(h.Handler, h.Create, http.StatusCreated, msg.Created))
	g.GET("", handler.Handle(h.Handler, h.List, http.StatusOK, msg.Listed))
	g.GET("/:id", handler.Handle(h.Handler, h.Get, http.StatusOK, msg.Retrieved))
	g.PUT("/:id", handler.Handle(h.Handler, h.Update, http.StatusOK, msg.Updated))
	g.DELETE("/:id", handler.Handle(h.Handler, h.Delete, http.StatusOK, msg.Deleted))
}

package middleware

import (
	"github.com/Sakibahmed2/portfolio-backend/internal/server"
)

// Middlewares groups every middleware component used by the HTTP server,
// built once and handed to the router.
type Middlewares struct {
	// Global holds CORS, request logging, recovery, secure headers and the
	// global error handler.
	Global *GlobalMiddlewares

	// ContextEnhancer installs the request-scoped logger.
	ContextEnhancer *ContextEnhancer

	// Tracing provides the New Relic middleware and transaction attributes.
	Tracing *TracingMiddleware

	// RateLimit enforces server.rate_limit and reports rejections.
	RateLimit *RateLimitMiddleware

	// Metrics counts requests for the /metrics endpoint.
	Metrics *MetricsMiddleware
}

// NewMiddlewares constructs all middleware components using the application container.
//
// When New Relic is not configured the application is nil and the tracing
// middleware degrades into a pass-through.
func NewMiddlewares(s *server.Server) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		RateLimit:       NewRateLimitMiddleware(s),
		Metrics:         NewMetricsMiddleware(),
	}
}

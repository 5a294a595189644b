package handler

import (
	"time"

	"github.com/Sakibahmed2/portfolio-backend/internal/middleware"
	"github.com/Sakibahmed2/portfolio-backend/internal/server"
	"github.com/Sakibahmed2/portfolio-backend/internal/validation"
	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// Handler is the base handler type that holds shared application dependencies.
//
// It is embedded by concrete handlers (e.g., DocumentHandler, HealthHandler) so they can
// access shared resources via *server.Server (config, logger, db, redis, job, etc.).
type Handler struct {
	server *server.Server
}

// NewHandler constructs a base Handler.
//
// Note: it returns the struct by value. This is fine because the struct only contains
// a pointer field (*server.Server). Copying it is cheap and still points to the same Server.
func NewHandler(s *server.Server) Handler {
	return Handler{server: s}
}

// Envelope is the body of every successful API response.
//
// Data is always written, so a lookup that found nothing is reported as
// "data": null. Failures are rendered by the global error handler.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// --- Generic typed handler plumbing -----------------------------------------

// Request constrains the request type parameter of Handle.
//
// PReq is the pointer form (*CreateSkillRequest) of a plain struct type
// Req. Handle allocates a new(Req) per request, so concurrent requests
// never share one payload.
type Request[Req any] interface {
	*Req
	validation.Validatable
}

// HandlerFunc represents a typed endpoint function that:
//
// - receives a validated request payload (PReq)
// - returns a response (Res) or an error
type HandlerFunc[PReq validation.Validatable, Res any] func(c echo.Context, req PReq) (Res, error)

// ResponseHandler defines how a successful handler result is written to
// the HTTP response, and how observability attributes should be attached
// for that response.
type ResponseHandler interface {
	// Handle writes the HTTP response for the given result.
	Handle(c echo.Context, result interface{}) error

	// GetOperation returns an operation name used for structured logging.
	GetOperation() string

	// AddAttributes attaches New Relic attributes based on the result.
	AddAttributes(txn *newrelic.Transaction, result interface{})
}

// EnvelopeResponseHandler writes the result as Envelope.Data with a fixed
// status and success message.
type EnvelopeResponseHandler struct {
	status  int
	message string
}

func (h EnvelopeResponseHandler) Handle(c echo.Context, result interface{}) error {
	return c.JSON(h.status, Envelope{
		Success: true,
		Message: h.message,
		Data:    result,
	})
}

func (h EnvelopeResponseHandler) GetOperation() string {
	return "handler"
}

func (h EnvelopeResponseHandler) AddAttributes(txn *newrelic.Transaction, result interface{}) {
	if txn == nil {
		return
	}
	// http.status_code is already set by tracing middleware (EnhanceTracing).
	txn.AddAttribute("response.message", h.message)
	txn.AddAttribute("response.has_data", result != nil)
}

// handleRequest is the shared execution pipeline for all typed handlers.
// It centralizes:
//
// - request binding + validation
// - structured logging (with request context)
// - New Relic tracing attributes and error reporting
// - timing metrics (validation duration, handler duration, total duration)
// - response writing
func handleRequest[Req validation.Validatable](
	c echo.Context,
	req Req,
	handler func(c echo.Context, req Req) (interface{}, error),
	responseHandler ResponseHandler,
) error {
	start := time.Now()
	method := c.Request().Method
	route := c.Path()

	// New Relic transaction is set by the New Relic Echo middleware (nrecho).
	txn := newrelic.FromContext(c.Request().Context())
	if txn != nil {
		txn.AddAttribute("handler.name", route)
	}

	// The context-enhanced logger already carries request_id and trace ids.
	logger := middleware.GetLogger(c).With().
		Str("operation", responseHandler.GetOperation()).
		Str("method", method).
		Str("route", route).
		Logger()

	logger.Debug().Msg("handling request")

	// ---------------- Validation phase ---------------------------------------
	validationStart := time.Now()

	if err := validation.BindAndValidate(c, req); err != nil {
		validationDuration := time.Since(validationStart)

		logger.Warn().
			Err(err).
			Dur("validation_duration", validationDuration).
			Msg("request validation failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("validation.status", "failed")
			txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
		}

		// The global error handler formats the response.
		return err
	}

	validationDuration := time.Since(validationStart)
	if txn != nil {
		txn.AddAttribute("validation.status", "success")
		txn.AddAttribute("validation.duration_ms", validationDuration.Milliseconds())
	}

	// ---------------- Handler execution phase --------------------------------
	handlerStart := time.Now()
	result, err := handler(c, req)
	handlerDuration := time.Since(handlerStart)

	if err != nil {
		totalDuration := time.Since(start)

		logger.Error().
			Err(err).
			Dur("handler_duration", handlerDuration).
			Dur("total_duration", totalDuration).
			Msg("handler execution failed")

		if txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("handler.status", "error")
			txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
			txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		}
		return err
	}

	totalDuration := time.Since(start)

	if txn != nil {
		txn.AddAttribute("handler.status", "success")
		txn.AddAttribute("handler.duration_ms", handlerDuration.Milliseconds())
		txn.AddAttribute("total.duration_ms", totalDuration.Milliseconds())
		responseHandler.AddAttributes(txn, result)
	}

	logger.Debug().
		Dur("handler_duration", handlerDuration).
		Dur("validation_duration", validationDuration).
		Dur("total_duration", totalDuration).
		Msg("request completed successfully")

	return responseHandler.Handle(c, result)
}

// Handle wraps a typed handler with binding, validation, error handling,
// logging and tracing, and writes its result inside an Envelope.
//
// Usage:
//
//	g.POST("/skills", handler.Handle(h.Handler, h.CreateSkill, http.StatusCreated, "Skills created successfully"))
//
// Req is inferred from the handler's pointer parameter.
func Handle[Req any, PReq Request[Req], Res any](
	h Handler,
	handler HandlerFunc[PReq, Res],
	status int,
	message string,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := PReq(new(Req))
		return handleRequest(c, req, func(c echo.Context, req PReq) (interface{}, error) {
			return handler(c, req)
		}, EnvelopeResponseHandler{status: status, message: message})
	}
}

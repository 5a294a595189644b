// Package server defines the core Server struct that composes the app's main dependencies.
//
// It contains the initialization logic to spin up the HTTP server
// and handles graceful shutdowns
//
// It owns the lifecycle of:
//   - configuration
//   - logger + optional New Relic service wrapper
//   - MongoDB client
//   - optional redis client (list cache)
//   - optional background job worker server (asynq)
//   - http.Server
//
// It provides constructors and start/shutdown logic to run the application cleanly.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Sakibahmed2/portfolio-backend/internal/config"
	"github.com/Sakibahmed2/portfolio-backend/internal/database"
	"github.com/Sakibahmed2/portfolio-backend/internal/lib/cache"
	"github.com/Sakibahmed2/portfolio-backend/internal/lib/job"
	"github.com/newrelic/go-agent/v3/integrations/nrredis-v9"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	loggerPkg "github.com/Sakibahmed2/portfolio-backend/internal/logger"
)

// RedisPingTimeout bounds the startup Redis check.
const RedisPingTimeout = 5 * time.Second

// Server is the application container that holds shared resources.
//
// It is not the HTTP server itself. It holds:
//   - the config
//   - the logger(s)
//   - database and redis connections
//   - background job service
//   - an internal *http.Server used to listen and serve requests
type Server struct {
	// Config holds all environment/config values for the app.
	Config *config.Config

	// Logger is the application's main structured logger.
	Logger *zerolog.Logger

	// LoggerService optionally holds the New Relic application instance.
	// If New Relic is disabled, this may exist but contain nil nrApp.
	LoggerService *loggerPkg.LoggerService

	// DB holds the MongoDB client wrapper.
	DB *database.Database

	// Redis is the Redis client. Nil when no Redis address is configured.
	Redis *redis.Client

	// httpServer is the standard library HTTP server instance.
	// It is configured in SetupHTTPServer and started in Start().
	httpServer *http.Server

	// Job runs background workers (Asynq server) and provides a client for
	// enqueueing. Nil whenever Redis is nil.
	Job *job.JobService
}

// New constructs a Server and initializes core dependencies.
//
// It does NOT start the HTTP server or the job workers. Handlers for jobs
// depend on services built from this Server, so main wires them and then
// calls Job.Start and Start.
//
// Initialization performed:
//   - MongoDB client + optional New Relic monitoring (fails startup when unreachable)
//   - Redis client + optional New Relic hooks (only when configured)
//   - JobService (Asynq client/server) sharing the Redis client
//
// A configured Redis that does not answer is logged and startup continues:
// the cache and job layers tolerate Redis errors.
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	server := &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}

	if !cfg.Redis.Enabled() {
		logger.Info().Msg("Redis address not configured, running without cache and background jobs")
		return server, nil
	}

	// This does not actually connect immediately; Redis connections are lazy.
	redisClient := cache.NewRedisClient(cfg.Redis)

	// Hooks instrument Redis operations (commands timing, errors, etc.)
	// so they show up in distributed traces.
	if app := loggerService.GetApplication(); app != nil {
		redisClient.AddHook(nrredis.NewHook(redisClient.Options()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), RedisPingTimeout)
	defer cancel()

	if err := cache.Ping(ctx, redisClient); err != nil {
		logger.Error().Err(err).Str("address", cfg.Redis.Address).Msg("Failed to connect to Redis, continuing; cache reads will fall back to MongoDB")
	} else {
		logger.Info().Str("address", cfg.Redis.Address).Msg("connected to Redis")
	}

	server.Redis = redisClient
	server.Job = job.NewJobService(logger, redisClient, loggerService.GetApplication())

	return server, nil
}

// SetupHTTPServer configures the internal net/http server.
//
// The actual router/mux is passed in as handler.
func (s *Server) SetupHTTPServer(handler http.Handler) {
	s.httpServer = &http.Server{
		Addr:    ":" + s.Config.Server.Port,
		Handler: handler,

		// These timeouts protect against slow clients and resource exhaustion.
		// Config stores int values, interpreted here as seconds.
		ReadTimeout:  time.Duration(s.Config.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.Config.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(s.Config.Server.IdleTimeout) * time.Second,
	}
}

// Start runs the HTTP server.
//
// It requires SetupHTTPServer to be called first. It blocks until the
// server stops; after Shutdown it returns http.ErrServerClosed.
func (s *Server) Start() error {
	if s.httpServer == nil {
		return errors.New("HTTP server not initialized")
	}

	s.Logger.Info().
		Str("port", s.Config.Server.Port).
		Str("env", s.Config.Primary.Env).
		Msg("starting server")

	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and its dependencies.
//
// Order:
//   - stop HTTP server (finish inflight requests until ctx deadline)
//   - stop job service (asynq) if it exists
//   - close the Redis client
//   - disconnect MongoDB
//
// Every step runs even if an earlier one failed; the errors are joined.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
		}
	}

	if s.Job != nil {
		s.Job.Stop()
	}

	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close redis client: %w", err))
		}
	}

	if s.DB != nil {
		if err := s.DB.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database connection: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Command portfolio runs the portfolio backend: the REST API over the
// skills, projects and blogs collections.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Sakibahmed2/portfolio-backend/internal/config"
	"github.com/Sakibahmed2/portfolio-backend/internal/database"
	"github.com/Sakibahmed2/portfolio-backend/internal/handler"
	"github.com/Sakibahmed2/portfolio-backend/internal/logger"
	"github.com/Sakibahmed2/portfolio-backend/internal/repository"
	"github.com/Sakibahmed2/portfolio-backend/internal/router"
	"github.com/Sakibahmed2/portfolio-backend/internal/server"
	"github.com/Sakibahmed2/portfolio-backend/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	// Startup is fail-fast: without MongoDB there is nothing to serve.
	srv, err := server.New(cfg, &log, loggerService)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Database.ConnectTimeout)
	err = database.EnsureCollections(ctx, &log, srv.DB, database.Collections)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to prepare collections")
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewService(srv, repos)
	if err != nil {
		log.Fatal().Err(err).Msg("could not create services")
	}

	if srv.Job != nil {
		srv.Job.InitHandlers(services.Warmers())
		if err := srv.Job.Start(); err != nil {
			log.Fatal().Err(err).Msg("failed to start job server")
		}
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)

	srv.SetupHTTPServer(r)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}

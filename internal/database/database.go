// Package database contains the logic for establishing
// the connection to MongoDB.
//
// It handles:
//   - building client options from config (URI, pool size, timeouts)
//   - wiring command logging (zerolog, local env only)
//   - slow command warnings above the configured threshold
//   - optional New Relic instrumentation (nrmongo)
package database

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Sakibahmed2/portfolio-backend/internal/config"
	loggerConfig "github.com/Sakibahmed2/portfolio-backend/internal/logger"
	"github.com/newrelic/go-agent/v3/integrations/nrmongo"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/event"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Database wraps the MongoDB client, the application database handle and a logger.
// It provides a simple object you can pass around the app.
//
// Client owns the connection pool.
// DB is the "portfolio" database (or whatever Database.Name says).
// log is used for lifecycle logs (connect/close, etc.).
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
	log    *zerolog.Logger
}

// DatabasePingTimeout defines the number of seconds to wait for a ping
// before considering the database "unreachable".
const DatabasePingTimeout = 10

// New connects to MongoDB with instrumentation.
//
// Inputs:
//   - cfg: application config (URI, database name, pool settings, etc.)
//   - logger: main app logger
//   - loggerService: optional New Relic service (nil if not configured)
//
// Behavior:
//   - Build client options from the URI
//   - Attach a command monitor (local logging and/or New Relic)
//   - Connect, ping the primary, and return Database
func New(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) (*Database, error) {
	clientOptions := options.Client().
		ApplyURI(cfg.Database.URI).
		SetMaxPoolSize(cfg.Database.MaxPoolSize).
		SetConnectTimeout(cfg.Database.ConnectTimeout).
		SetServerSelectionTimeout(cfg.Database.ConnectTimeout)

	if monitor := newCommandMonitor(cfg, logger, loggerService); monitor != nil {
		clientOptions.SetMonitor(monitor)
	}

	// Validate the options up front; a bad URI is a config error, not a network one.
	if err := clientOptions.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mongodb options: %w", err)
	}

	// Connect does not block on the network; the ping below does.
	client, err := mongo.Connect(context.Background(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to create mongodb client: %w", err)
	}

	database := &Database{
		Client: client,
		DB:     client.Database(cfg.Database.Name),
		log:    logger,
	}

	// Ping the primary with a timeout, so startup fails fast if MongoDB is down.
	ctx, cancel := context.WithTimeout(context.Background(), DatabasePingTimeout*time.Second)
	defer cancel()
	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info().Str("database", cfg.Database.Name).Msg("connected to the database")

	return database, nil
}

// Ping checks that the primary is reachable. Used by the /status endpoint.
func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, readpref.Primary())
}

// Collection returns a handle on the named collection.
func (db *Database) Collection(name string) *mongo.Collection {
	return db.DB.Collection(name)
}

// Close disconnects the client, waiting for in-use connections up to ctx's deadline.
func (db *Database) Close(ctx context.Context) error {
	db.log.Info().Msg("closing database connection")
	return db.Client.Disconnect(ctx)
}

// newCommandMonitor builds the driver's command monitor.
//
// The driver accepts a single *event.CommandMonitor, so the local logger
// and New Relic are chained: nrmongo wraps the original monitor and calls
// it after recording its own segment.
//
// Returns nil when neither is needed.
func newCommandMonitor(cfg *config.Config, logger *zerolog.Logger, loggerService *loggerConfig.LoggerService) *event.CommandMonitor {
	var monitor *event.CommandMonitor

	threshold := time.Duration(0)
	if cfg.Observability != nil {
		threshold = cfg.Observability.Logging.SlowQueryThreshold
	}

	// Per-command logging is very noisy, which is why it's only in local.
	// Slow command warnings are always on.
	var commandLogger *zerolog.Logger
	if cfg.Primary.Env == "local" {
		mongoLogger := loggerConfig.NewMongoLogger(loggerConfig.GetMongoCommandLogLevel(logger.GetLevel()))
		commandLogger = &mongoLogger
	}

	if commandLogger != nil || threshold > 0 {
		monitor = newLoggingMonitor(logger, commandLogger, threshold)
	}

	if loggerService != nil && loggerService.GetApplication() != nil {
		monitor = nrmongo.NewCommandMonitor(monitor)
	}

	return monitor
}

// newLoggingMonitor returns a monitor that logs commands to commandLogger
// (when set) and warns on appLogger about commands slower than threshold
// (when positive).
func newLoggingMonitor(appLogger, commandLogger *zerolog.Logger, threshold time.Duration) *event.CommandMonitor {
	// Started events carry the command body; finished events only carry the
	// request id. Keep the command name and database around until the end.
	var started sync.Map

	type startedCommand struct {
		name     string
		database string
	}

	finish := func(requestID int64, name string, duration time.Duration, failure string) {
		sc := startedCommand{name: name}
		if v, ok := started.LoadAndDelete(requestID); ok {
			sc = v.(startedCommand)
		}

		if commandLogger != nil {
			ev := commandLogger.Debug()
			if failure != "" {
				ev = commandLogger.Error().Str("failure", failure)
			}
			ev.Str("command", sc.name).
				Str("database", sc.database).
				Int64("request_id", requestID).
				Dur("duration", duration).
				Msg("mongo command finished")
		}

		if threshold > 0 && duration >= threshold {
			appLogger.Warn().
				Str("command", sc.name).
				Str("database", sc.database).
				Dur("duration", duration).
				Dur("threshold", threshold).
				Msg("slow mongo command")
		}
	}

	return &event.CommandMonitor{
		Started: func(_ context.Context, evt *event.CommandStartedEvent) {
			started.Store(evt.RequestID, startedCommand{name: evt.CommandName, database: evt.DatabaseName})

			if commandLogger != nil {
				commandLogger.Debug().
					Str("command", evt.CommandName).
					Str("database", evt.DatabaseName).
					Int64("request_id", evt.RequestID).
					Str("body", evt.Command.String()).
					Msg("mongo command started")
			}
		},
		Succeeded: func(_ context.Context, evt *event.CommandSucceededEvent) {
			finish(evt.RequestID, evt.CommandName, evt.Duration, "")
		},
		Failed: func(_ context.Context, evt *event.CommandFailedEvent) {
			finish(evt.RequestID, evt.CommandName, evt.Duration, evt.Failure)
		},
	}
}

// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
//
// Both sides share the application's go-redis client, so Redis commands
// issued by Asynq carry the same instrumentation as the cache.
package job

import (
	"github.com/hibiken/asynq"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	// server runs worker processes that pull tasks from Redis and execute handlers.
	server *asynq.Server

	// logger is used for lifecycle logs and handler logs.
	logger *zerolog.Logger

	// nrApp records one background transaction per task. May be nil.
	nrApp *newrelic.Application

	// warmers maps a collection name to the function that reloads its
	// cached list. Set by InitHandlers.
	warmers map[string]CacheWarmer
}

// NewJobService creates a JobService on top of an existing Redis client.
//
// It builds both:
//   - an asynq.Client (to push jobs)
//   - an asynq.Server (to process jobs)
//
// Queue weights give "critical" tasks more worker share; cache warm-ups
// run on "low".
func NewJobService(logger *zerolog.Logger, redisClient redis.UniversalClient, nrApp *newrelic.Application) *JobService {
	client := asynq.NewClientFromRedisClient(redisClient)

	// Concurrency = 10 means up to 10 tasks can be processed in parallel.
	// Queues weights distribute those workers across queues by ratio.
	server := asynq.NewServerFromRedisClient(
		redisClient,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client:  client,
		server:  server,
		logger:  logger,
		nrApp:   nrApp,
		warmers: map[string]CacheWarmer{},
	}
}

// Start registers task handlers and starts the background worker server.
//
// asynq.Server.Start does not block: workers run in their own goroutines
// until Stop.
func (j *JobService) Start() error {
	// ServeMux is like HTTP routing, but for job types.
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWarmCache, j.handleWarmCacheTask)

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(mux)
}

// Stop gracefully stops the job server and closes client resources.
//
// The shared Redis client is left open; the server container closes it.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}

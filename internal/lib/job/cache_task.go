package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWarmCache is the job type name stored in Redis.
	// Asynq uses task type strings to route to handlers.
	TaskWarmCache = "cache:warm"

	// warmCacheUniqueTTL collapses bursts of writes into one reload.
	warmCacheUniqueTTL = 30 * time.Second
)

// WarmCachePayload is the JSON payload data for the warm-up task.
type WarmCachePayload struct {
	Collection string `json:"collection"`
}

// NewWarmCacheTask constructs an Asynq task that reloads a collection's
// cached list.
//
// Task options:
//   - MaxRetry(3): retry up to 3 times on failure
//   - Queue("low"): warm-ups never compete with anything important
//   - Timeout(30s): kill the task if handler runs longer than 30 seconds
//   - Unique(30s): at most one pending warm-up per collection
func NewWarmCacheTask(collection string) (*asynq.Task, error) {
	payload, err := json.Marshal(WarmCachePayload{Collection: collection})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWarmCache,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
		asynq.Unique(warmCacheUniqueTTL),
	), nil
}

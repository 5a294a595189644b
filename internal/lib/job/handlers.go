package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	pkgerrors "github.com/pkg/errors"
)

// CacheWarmer reloads one collection's list into the cache.
type CacheWarmer interface {
	WarmCache(ctx context.Context) error
}

// InitHandlers registers the warmers the cache task dispatches to,
// keyed by collection name.
func (j *JobService) InitHandlers(warmers map[string]CacheWarmer) {
	for collection, w := range warmers {
		j.warmers[collection] = w
	}
}

// EnqueueWarmCache schedules a reload of collection's cached list.
//
// A warm-up already pending for the same collection is not an error.
func (j *JobService) EnqueueWarmCache(ctx context.Context, collection string) error {
	task, err := NewWarmCacheTask(collection)
	if err != nil {
		return err
	}

	_, err = j.Client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrDuplicateTask) {
		return nil
	}
	return err
}

// handleWarmCacheTask processes the warm-up task.
//
// Steps:
//   - Parse JSON payload from the Asynq task
//   - Look up the collection's warmer
//   - Reload the list inside a New Relic background transaction
//   - Log success/failure
func (j *JobService) handleWarmCacheTask(ctx context.Context, t *asynq.Task) error {
	var p WarmCachePayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// A payload that cannot be decoded will never succeed.
		return fmt.Errorf("failed to unmarshal warm cache payload: %v: %w", err, asynq.SkipRetry)
	}

	warmer, ok := j.warmers[p.Collection]
	if !ok {
		return fmt.Errorf("no cache warmer for collection %q: %w", p.Collection, asynq.SkipRetry)
	}

	if j.nrApp != nil {
		txn := j.nrApp.StartTransaction(TaskWarmCache)
		txn.AddAttribute("collection", p.Collection)
		defer txn.End()
		ctx = newrelic.NewContext(ctx, txn)
	}

	j.logger.Debug().
		Str("type", TaskWarmCache).
		Str("collection", p.Collection).
		Msg("Processing warm cache task")

	if err := warmer.WarmCache(ctx); err != nil {
		err = pkgerrors.Wrapf(err, "warm %s cache", p.Collection)

		if txn := newrelic.FromContext(ctx); txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
		}

		j.logger.Error().
			Stack().
			Str("type", TaskWarmCache).
			Str("collection", p.Collection).
			Err(err).
			Msg("Failed to warm cache")
		return err // returning err makes Asynq mark it failed and schedule retry
	}

	j.logger.Debug().
		Str("type", TaskWarmCache).
		Str("collection", p.Collection).
		Msg("Successfully warmed cache")

	return nil
}

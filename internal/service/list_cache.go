package service

import (
	"context"
	"fmt"

	"github.com/Sakibahmed2/portfolio-backend/internal/logger"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
)

// cachedList serves a collection's full list, read-through a ListCache.
//
// Payloads are BSON so ObjectIDs, integers and dates survive the round
// trip unchanged. cache and warm may be nil.
//
// Every fill reads the collection's generation before loading and stores
// the result only if the generation is unchanged. Writes bump it in
// invalidate, so a load that started before a write is never cached.
type cachedList[T any] struct {
	collection string
	cache      ListCache
	warm       WarmScheduler
	logger     *zerolog.Logger
	load       func(ctx context.Context) ([]T, error)
}

// listPayload wraps the list because a BSON document cannot be a bare array.
type listPayload[T any] struct {
	Items []T `bson:"items"`
}

// log prefers the request logger carried by ctx.
func (l *cachedList[T]) log(ctx context.Context) *zerolog.Logger {
	return logger.FromContext(ctx, l.logger)
}

func (l *cachedList[T]) get(ctx context.Context) ([]T, error) {
	if l.cache == nil {
		return l.load(ctx)
	}

	log := l.log(ctx)

	version, err := l.cache.Version(ctx, l.collection)
	if err != nil {
		log.Warn().Err(err).Str("collection", l.collection).Msg("list cache read failed, using database")
		return l.load(ctx)
	}

	payload, hit, err := l.cache.Get(ctx, l.collection)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("collection", l.collection).Msg("list cache read failed, using database")
	case hit:
		items, err := decodeList[T](payload)
		if err == nil {
			return items, nil
		}
		log.Warn().Err(err).Str("collection", l.collection).Msg("discarding undecodable list cache entry")
	}

	items, err := l.load(ctx)
	if err != nil {
		return nil, err
	}

	if _, err := l.store(ctx, version, items); err != nil {
		log.Warn().Err(err).Str("collection", l.collection).Msg("list cache write failed")
	}
	return items, nil
}

// invalidate drops the cached list after a write and schedules a warm-up.
// It runs before the write's response is sent so a following list sees the write.
func (l *cachedList[T]) invalidate(ctx context.Context) {
	if l.cache == nil {
		return
	}

	log := l.log(ctx)

	if err := l.cache.Invalidate(ctx, l.collection); err != nil {
		log.Warn().Err(err).Str("collection", l.collection).Msg("list cache invalidation failed")
	}

	if l.warm == nil {
		return
	}
	if err := l.warm.EnqueueWarmCache(ctx, l.collection); err != nil {
		log.Warn().Err(err).Str("collection", l.collection).Msg("failed to enqueue cache warm-up")
	}
}

// WarmCache reloads the list from the database into the cache.
// Unlike get, errors are returned so the job queue can retry. A reload
// overtaken by a write is dropped; the next list request fills the cache.
func (l *cachedList[T]) WarmCache(ctx context.Context) error {
	if l.cache == nil {
		return nil
	}

	version, err := l.cache.Version(ctx, l.collection)
	if err != nil {
		return err
	}

	items, err := l.load(ctx)
	if err != nil {
		return err
	}

	stored, err := l.store(ctx, version, items)
	if err != nil {
		return err
	}
	if !stored {
		l.log(ctx).Debug().Str("collection", l.collection).Msg("list changed during warm-up, not cached")
	}
	return nil
}

func (l *cachedList[T]) store(ctx context.Context, version int64, items []T) (bool, error) {
	payload, err := bson.Marshal(listPayload[T]{Items: items})
	if err != nil {
		return false, fmt.Errorf("encode %s list: %w", l.collection, err)
	}
	return l.cache.SetIfVersion(ctx, l.collection, version, payload)
}

func decodeList[T any](payload []byte) ([]T, error) {
	var p listPayload[T]
	if err := bson.Unmarshal(payload, &p); err != nil {
		return nil, err
	}
	if p.Items == nil {
		p.Items = []T{}
	}
	return p.Items, nil
}

// Package service contains the business logic.
//
// It sits between the handler and repository layers.
// It receives validated data from the handler, performs
// business operations, and calls repository methods to interact
// with the data.
//
// List reads go through an optional Redis cache; writes invalidate it and
// schedule a background warm-up. Cache and queue failures are logged and
// never fail a request.
package service

import (
	"context"

	"github.com/Sakibahmed2/portfolio-backend/internal/model"
)

// SkillStore is the persistence the skill service needs.
type SkillStore interface {
	Collection() string
	Insert(ctx context.Context, skill model.Skill) (*model.Skill, error)
	FindAll(ctx context.Context) ([]model.Skill, error)
}

// DocumentStore is the persistence the document service needs.
type DocumentStore interface {
	Collection() string
	Insert(ctx context.Context, doc model.Document) (model.Document, error)
	FindAll(ctx context.Context) ([]model.Document, error)
	FindByID(ctx context.Context, id string) (model.Document, error)
	UpdateByID(ctx context.Context, id string, fields model.Document) (*model.UpdateResult, error)
	DeleteByID(ctx context.Context, id string) (*model.DeleteResult, error)
}

// ListCache holds one serialized list per collection, guarded by a
// generation counter that Invalidate advances.
type ListCache interface {
	Get(ctx context.Context, collection string) ([]byte, bool, error)
	Version(ctx context.Context, collection string) (int64, error)
	SetIfVersion(ctx context.Context, collection string, version int64, payload []byte) (bool, error)
	Invalidate(ctx context.Context, collection string) error
}

// WarmScheduler queues a background reload of a collection's list.
type WarmScheduler interface {
	EnqueueWarmCache(ctx context.Context, collection string) error
}

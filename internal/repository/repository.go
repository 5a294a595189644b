// Package repository handles all interactions with the database.
//
// Each repository wraps one MongoDB collection and issues exactly one
// store call per method (two for an update with an empty body),
// abstracting the driver away from the service layer.
//
// Every call is bounded by the configured operation timeout on top of
// the caller's context, so a dropped client or a stuck server cannot hold
// a request forever.
package repository

import (
	"context"
	"time"

	"github.com/Sakibahmed2/portfolio-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
)

// byID is the filter matching a single document by its ObjectID.
func byID(hex string) (bson.D, error) {
	id, err := model.ParseID(hex)
	if err != nil {
		return nil, err
	}
	return bson.D{{Key: "_id", Value: id}}, nil
}

// withTimeout derives the context for one store call.
// A non-positive timeout leaves ctx untouched.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// Package storeerr specifically handles MongoDB driver errors.
//
// It classifies driver errors (malformed ids, duplicate keys, timeouts)
// and converts them into errs.HTTPError values that carry a
// machine-readable code, the route's fixed failure message and the
// underlying error.
package storeerr

import (
	"context"
	"errors"

	"github.com/Sakibahmed2/portfolio-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Code is the category of a store error.
type Code int

const (
	// Other is any error we have no specific mapping for.
	Other Code = iota

	// InvalidID means the path id is not a 24-character hex ObjectID.
	InvalidID

	// DuplicateKey is a unique index violation (server code 11000).
	DuplicateKey

	// Timeout covers deadline exceeded, server selection and network timeouts.
	Timeout

	// Canceled means the client went away before the store answered.
	Canceled
)

// String returns the action part of an error code.
func (c Code) String() string {
	switch c {
	case InvalidID:
		return "INVALID_ID"
	case DuplicateKey:
		return "ALREADY_EXISTS"
	case Timeout:
		return "TIMEOUT"
	case Canceled:
		return "CANCELED"
	default:
		return "ERROR"
	}
}

// ErrCode reports the Code for a given error.
//
// The order matters: mongo.IsTimeout also matches context.DeadlineExceeded,
// and cancellation is checked before it so a dropped client is not
// reported as a slow database.
func ErrCode(err error) Code {
	switch {
	case err == nil:
		return Other
	case errors.Is(err, model.ErrInvalidID), errors.Is(err, primitive.ErrInvalidHex):
		return InvalidID
	case mongo.IsDuplicateKeyError(err):
		return DuplicateKey
	case errors.Is(err, context.Canceled):
		return Canceled
	case mongo.IsTimeout(err):
		return Timeout
	default:
		return Other
	}
}

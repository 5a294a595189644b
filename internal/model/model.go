// Package model holds the records the API stores and the small result
// types returned by write operations.
package model

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Collection names in the portfolio database.
const (
	CollectionSkills   = "skills"
	CollectionProjects = "projects"
	CollectionBlogs    = "blogs"
)

// ErrInvalidID is returned by ParseID for anything that is not a
// 24-character hex ObjectID.
var ErrInvalidID = errors.New("invalid id")

// ParseID converts a path id into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w %q: must be a 24 character hex string", ErrInvalidID, hex)
	}
	return id, nil
}

// UpdateResult reports the outcome of an update-by-id.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult reports the outcome of a delete-by-id.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}

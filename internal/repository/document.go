package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Sakibahmed2/portfolio-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// DocumentRepository stores open key/value documents in one collection.
// Projects and blogs each get their own instance.
type DocumentRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewDocumentRepository(coll *mongo.Collection, timeout time.Duration) *DocumentRepository {
	return &DocumentRepository{coll: coll, timeout: timeout}
}

// Collection returns the collection name.
func (r *DocumentRepository) Collection() string {
	return r.coll.Name()
}

// Insert stores doc (minus any client supplied _id) and returns the
// stored document including the new _id.
func (r *DocumentRepository) Insert(ctx context.Context, doc model.Document) (model.Document, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	stored := doc.WithoutID()

	res, err := r.coll.InsertOne(ctx, bson.M(stored))
	if err != nil {
		return nil, fmt.Errorf("insert into %s: %w", r.coll.Name(), err)
	}

	stored["_id"] = res.InsertedID
	return stored, nil
}

// FindAll returns every document in natural order. Never nil.
func (r *DocumentRepository) FindAll(ctx context.Context) ([]model.Document, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", r.coll.Name(), err)
	}

	docs := []model.Document{}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode %s: %w", r.coll.Name(), err)
	}
	return docs, nil
}

// FindByID returns the document with the given hex id.
//
// A well-formed id with no matching document returns (nil, nil); a
// malformed id returns an error wrapping model.ErrInvalidID.
func (r *DocumentRepository) FindByID(ctx context.Context, id string) (model.Document, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var doc model.Document
	err = r.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find %s by id: %w", r.coll.Name(), err)
	}
	return doc, nil
}

// UpdateByID sets the given fields on the document with the given id.
//
// _id is never updated. With nothing left to set no write is issued and
// the result only reports whether the document exists.
func (r *DocumentRepository) UpdateByID(ctx context.Context, id string, fields model.Document) (*model.UpdateResult, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	set := fields.WithoutID()
	if len(set) == 0 {
		n, err := r.coll.CountDocuments(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("count %s by id: %w", r.coll.Name(), err)
		}
		return &model.UpdateResult{MatchedCount: n}, nil
	}

	res, err := r.coll.UpdateOne(ctx, filter, bson.D{{Key: "$set", Value: bson.M(set)}})
	if err != nil {
		return nil, fmt.Errorf("update %s by id: %w", r.coll.Name(), err)
	}

	return &model.UpdateResult{
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

// DeleteByID removes the document with the given id.
// An unknown id is not an error: DeletedCount is 0.
func (r *DocumentRepository) DeleteByID(ctx context.Context, id string) (*model.DeleteResult, error) {
	filter, err := byID(id)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("delete %s by id: %w", r.coll.Name(), err)
	}
	return &model.DeleteResult{DeletedCount: res.DeletedCount}, nil
}

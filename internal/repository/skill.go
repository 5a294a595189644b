package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Sakibahmed2/portfolio-backend/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// SkillRepository stores skills.
type SkillRepository struct {
	coll    *mongo.Collection
	timeout time.Duration
}

func NewSkillRepository(coll *mongo.Collection, timeout time.Duration) *SkillRepository {
	return &SkillRepository{coll: coll, timeout: timeout}
}

// Collection returns the collection name.
func (r *SkillRepository) Collection() string {
	return r.coll.Name()
}

// Insert stores a skill and returns it with the id assigned by the store.
// Any ID already set on skill is ignored.
func (r *SkillRepository) Insert(ctx context.Context, skill model.Skill) (*model.Skill, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	skill.ID = primitive.NilObjectID

	res, err := r.coll.InsertOne(ctx, skill)
	if err != nil {
		return nil, fmt.Errorf("insert skill: %w", err)
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		skill.ID = id
	}
	return &skill, nil
}

// FindAll returns every skill in natural order. Never nil.
func (r *SkillRepository) FindAll(ctx context.Context) ([]model.Skill, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find skills: %w", err)
	}

	skills := []model.Skill{}
	if err := cursor.All(ctx, &skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	return skills, nil
}

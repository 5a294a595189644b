package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Skill is a named skill with an icon reference, stored in "skills".
type Skill struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title string             `bson:"title" json:"title"`
	Icon  string             `bson:"icon" json:"icon"`
}

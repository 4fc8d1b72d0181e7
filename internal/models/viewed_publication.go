package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ViewedPublication marks that a user has already been shown a publication.
// Listings filter on these markers so the feed only surfaces fresh looks.
type ViewedPublication struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	User        string             `json:"user" bson:"user"`
	Publication string             `json:"publication" bson:"publication"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}

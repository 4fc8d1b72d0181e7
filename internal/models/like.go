package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Like represents a user→publication like edge.
// A unique (user, postId) index prevents double-likes.
type Like struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	User      string             `json:"user" bson:"user"`
	PostID    string             `json:"postId" bson:"postId"`
	PostOwner string             `json:"postOwner" bson:"postOwner"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// LikeRequest defines the request body for liking or unliking a post.
type LikeRequest struct {
	User   string `json:"user" validate:"required"`
	PostID string `json:"postId" validate:"required"`
}

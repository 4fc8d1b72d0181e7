package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment represents a comment on a publication. The publication owner is
// denormalized onto the comment so notifications never need a second lookup.
type Comment struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	User      string             `json:"user" bson:"user"`
	PostID    string             `json:"postId" bson:"postId"`
	Text      string             `json:"text" bson:"text"`
	PostOwner string             `json:"postOwner" bson:"postOwner"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// CreateCommentRequest defines the request body for creating a comment.
type CreateCommentRequest struct {
	User   string `json:"user" validate:"required"`
	PostID string `json:"postId" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

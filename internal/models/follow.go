package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Follow represents a follower→followed edge between two users.
// A unique (follower, followed) index prevents duplicate follows.
type Follow struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Follower  string             `json:"follower" bson:"follower"`
	Followed  string             `json:"followed" bson:"followed"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// FollowRequest defines the request body for following or unfollowing a user.
type FollowRequest struct {
	Follower string `json:"follower" validate:"required"`
	Followed string `json:"followed" validate:"required"`
}

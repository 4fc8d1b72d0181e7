package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification kinds.
const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"
	NotificationSystem  = "system"
)

// Notification is created as a side effect of follow/like/comment actions.
// Immutable once created except for the seen flag.
type Notification struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	User       string             `json:"user" bson:"user"` // recipient
	From       string             `json:"from" bson:"from"` // actor
	Kind       string             `json:"kind" bson:"kind"`
	TargetID   string             `json:"targetId,omitempty" bson:"targetId,omitempty"`
	TargetType string             `json:"targetType,omitempty" bson:"targetType,omitempty"`
	Text       string             `json:"text" bson:"text"`
	Seen       bool               `json:"seen" bson:"seen"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

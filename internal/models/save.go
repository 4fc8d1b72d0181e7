package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Save item types.
const (
	SaveItemPublication = "publication"
	SaveItemArticle     = "article"
)

// Save represents a user→item bookmark edge. The item is either a publication
// or an article; a unique (user, itemId, itemType) index prevents saving the
// same item twice.
type Save struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	User      string             `json:"user" bson:"user"`
	ItemID    string             `json:"itemId" bson:"itemId"`
	ItemType  string             `json:"itemType" bson:"itemType"`
	ItemOwner string             `json:"itemOwner,omitempty" bson:"itemOwner,omitempty"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// SaveRequest defines the request body for saving or unsaving an item.
type SaveRequest struct {
	User      string `json:"user" validate:"required"`
	ItemID    string `json:"itemId" validate:"required"`
	ItemType  string `json:"itemType" validate:"required,oneof=publication article"`
	ItemOwner string `json:"itemOwner"`
}

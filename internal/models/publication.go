package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Publication represents a user-authored look stored in MongoDB.
// The likes/shares/comments/saved fields are denormalized counters
// maintained incrementally by the sibling handlers.
type Publication struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Description  string             `json:"description" bson:"description"`
	User         string             `json:"user" bson:"user"`
	UrlsPhotos   []string           `json:"urlsPhotos" bson:"urlsPhotos"`
	Likes        int                `json:"likes" bson:"likes"`
	Shares       int                `json:"shares" bson:"shares"`
	Comments     int                `json:"comments" bson:"comments"`
	Saved        int                `json:"saved" bson:"saved"`
	DateCreation time.Time          `json:"dateCreation" bson:"dateCreation"`
	DateEdition  time.Time          `json:"dateEdition" bson:"dateEdition"`
}

// PublicationCounter names a denormalized counter field on a publication.
type PublicationCounter string

const (
	CounterLikes    PublicationCounter = "likes"
	CounterShares   PublicationCounter = "shares"
	CounterComments PublicationCounter = "comments"
	CounterSaved    PublicationCounter = "saved"
)

// CreatePublicationRequest holds the text fields of the multipart creation form.
type CreatePublicationRequest struct {
	Description string `json:"description" validate:"required"`
	User        string `json:"user" validate:"required"`
}

// UpdatePublicationRequest defines the merge-patch body for updating a publication.
type UpdatePublicationRequest struct {
	Description *string  `json:"description,omitempty" validate:"omitempty,min=1"`
	UrlsPhotos  []string `json:"urlsPhotos,omitempty"`
}

// MarkViewedRequest defines the request body for marking a publication as viewed.
type MarkViewedRequest struct {
	UserID string `json:"userId" validate:"required"`
}

// AdjustLikesRequest defines the request body for the like-counter endpoint.
// Only +1 and -1 are accepted.
type AdjustLikesRequest struct {
	Increment int `json:"increment"`
}

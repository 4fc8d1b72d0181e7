package models

import (
	"encoding/json"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Article represents a shoppable item attached to a publication.
type Article struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	PublicationID primitive.ObjectID `json:"publicationId" bson:"publicationId"`
	URLPhoto      string             `json:"urlPhoto" bson:"urlPhoto"`
	Titre         string             `json:"titre" bson:"titre"`
	Description   string             `json:"description,omitempty" bson:"description,omitempty"`
	Prix          float64            `json:"prix" bson:"prix"`
	Lien          string             `json:"lien,omitempty" bson:"lien,omitempty"`
	User          string             `json:"user" bson:"user"`
	SavesCount    int                `json:"savesCount" bson:"savesCount"`
	CreatedAt     time.Time          `json:"createdAt" bson:"createdAt"`
}

// ArticleInput mirrors one entry of the "articles" JSON string submitted with
// the publication creation form. The frontend is inconsistent about field
// names (titre/title, lien/link) and sends prix either as a number or a
// string, so both spellings are accepted and the price is coerced.
type ArticleInput struct {
	Titre       string      `json:"titre"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Prix        interface{} `json:"prix"`
	Lien        string      `json:"lien"`
	Link        string      `json:"link"`
	URLPhoto    string      `json:"urlPhoto"`
}

// NormalizedTitre returns the title regardless of which spelling was used.
func (a ArticleInput) NormalizedTitre() string {
	if a.Titre != "" {
		return a.Titre
	}
	return a.Title
}

// NormalizedLien returns the shop link regardless of which spelling was used.
func (a ArticleInput) NormalizedLien() string {
	if a.Lien != "" {
		return a.Lien
	}
	return a.Link
}

// NormalizedPrix coerces the submitted price into a number, falling back to 0
// for empty or invalid values.
func (a ArticleInput) NormalizedPrix() float64 {
	switch v := a.Prix.(type) {
	case float64:
		return v
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return f
		}
	}
	return 0
}

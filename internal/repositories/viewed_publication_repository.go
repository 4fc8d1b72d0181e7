package repositories

import (
	"context"
	"time"

	"github.com/lookshare/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ViewedPublicationRepository defines the interface for view-marker operations.
// Callers check HasViewed before MarkViewed; the pair carries no unique index.
type ViewedPublicationRepository interface {
	HasViewed(ctx context.Context, userID, publicationID string) (bool, error)
	MarkViewed(ctx context.Context, view *models.ViewedPublication) error
	GetViewedPublicationIDs(ctx context.Context, userID string) ([]primitive.ObjectID, error)
	EnsureIndexes(ctx context.Context) error
}

// MongoViewedPublicationRepository implements ViewedPublicationRepository for MongoDB
type MongoViewedPublicationRepository struct {
	collection *mongo.Collection
}

// NewMongoViewedPublicationRepository creates a new MongoViewedPublicationRepository
func NewMongoViewedPublicationRepository(db *mongo.Database) *MongoViewedPublicationRepository {
	return &MongoViewedPublicationRepository{collection: db.Collection("viewed_publications")}
}

// EnsureIndexes creates the (user, publication) lookup index.
func (r *MongoViewedPublicationRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}, {Key: "publication", Value: 1}},
	})
	return err
}

// HasViewed reports whether a view marker exists for the pair.
func (r *MongoViewedPublicationRepository) HasViewed(ctx context.Context, userID, publicationID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user": userID, "publication": publicationID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkViewed records that the user has been shown the publication.
func (r *MongoViewedPublicationRepository) MarkViewed(ctx context.Context, view *models.ViewedPublication) error {
	view.ID = primitive.NewObjectID()
	view.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, view)
	return err
}

// GetViewedPublicationIDs returns the ids of every publication the user has
// viewed, for use in the unseen-feed $nin filter. Markers whose publication id
// is not a valid ObjectID are skipped.
func (r *MongoViewedPublicationRepository) GetViewedPublicationIDs(ctx context.Context, userID string) ([]primitive.ObjectID, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var views []models.ViewedPublication
	if err = cursor.All(ctx, &views); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(views))
	for _, v := range views {
		objID, err := primitive.ObjectIDFromHex(v.Publication)
		if err != nil {
			continue
		}
		ids = append(ids, objID)
	}
	return ids, nil
}

package repositories

import (
	"context"
	"time"

	"github.com/lookshare/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PublicationRepository defines the interface for publication data operations
type PublicationRepository interface {
	CreatePublication(ctx context.Context, publication *models.Publication) error
	GetPublicationByID(ctx context.Context, id string) (*models.Publication, error)
	GetAllPublications(ctx context.Context) ([]models.Publication, error)
	GetPublicationsExcluding(ctx context.Context, excluded []primitive.ObjectID) ([]models.Publication, error)
	GetPublicationsByUser(ctx context.Context, userID string) ([]models.Publication, error)
	UpdatePublication(ctx context.Context, id string, req *models.UpdatePublicationRequest) (*models.Publication, error)
	DeletePublication(ctx context.Context, id string) error
	AdjustCounter(ctx context.Context, id string, counter models.PublicationCounter, delta int) (*models.Publication, error)
}

// MongoPublicationRepository implements PublicationRepository for MongoDB
type MongoPublicationRepository struct {
	collection *mongo.Collection
}

// NewMongoPublicationRepository creates a new MongoPublicationRepository
func NewMongoPublicationRepository(db *mongo.Database) *MongoPublicationRepository {
	return &MongoPublicationRepository{collection: db.Collection("publications")}
}

// CreatePublication inserts a publication. The caller may preassign the ID so
// uploaded photo filenames can carry it; a zero ID gets a fresh ObjectID.
func (r *MongoPublicationRepository) CreatePublication(ctx context.Context, publication *models.Publication) error {
	if publication.ID.IsZero() {
		publication.ID = primitive.NewObjectID()
	}
	if publication.UrlsPhotos == nil {
		publication.UrlsPhotos = []string{}
	}
	publication.DateCreation = time.Now()
	publication.DateEdition = publication.DateCreation
	_, err := r.collection.InsertOne(ctx, publication)
	return err
}

// GetPublicationByID retrieves a publication by its hex ID.
func (r *MongoPublicationRepository) GetPublicationByID(ctx context.Context, id string) (*models.Publication, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var publication models.Publication
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&publication)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &publication, nil
}

// GetAllPublications retrieves every publication.
func (r *MongoPublicationRepository) GetAllPublications(ctx context.Context) ([]models.Publication, error) {
	return r.find(ctx, bson.M{}, nil)
}

// GetPublicationsExcluding retrieves all publications whose id is not in the
// excluded set. Backs the unseen-feed listing.
func (r *MongoPublicationRepository) GetPublicationsExcluding(ctx context.Context, excluded []primitive.ObjectID) ([]models.Publication, error) {
	if excluded == nil {
		excluded = []primitive.ObjectID{}
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$nin": excluded}}, nil)
}

// GetPublicationsByUser retrieves all publications authored by a user,
// regardless of view status.
func (r *MongoPublicationRepository) GetPublicationsByUser(ctx context.Context, userID string) ([]models.Publication, error) {
	return r.find(ctx, bson.M{"user": userID}, nil)
}

func (r *MongoPublicationRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Publication, error) {
	publications := []models.Publication{}
	var cursor *mongo.Cursor
	var err error
	if opts != nil {
		cursor, err = r.collection.Find(ctx, filter, opts)
	} else {
		cursor, err = r.collection.Find(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &publications); err != nil {
		return nil, err
	}
	return publications, nil
}

// UpdatePublication applies a merge-patch and returns the updated document.
func (r *MongoPublicationRepository) UpdatePublication(ctx context.Context, id string, req *models.UpdatePublicationRequest) (*models.Publication, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	set := bson.M{"dateEdition": time.Now()}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.UrlsPhotos != nil {
		set["urlsPhotos"] = req.UrlsPhotos
	}

	var publication models.Publication
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&publication)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &publication, nil
}

// DeletePublication deletes a publication by ID.
func (r *MongoPublicationRepository) DeletePublication(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AdjustCounter atomically adjusts one of the denormalized counters and
// returns the updated document. All counter mutation goes through here so the
// increments stay single atomic operations.
func (r *MongoPublicationRepository) AdjustCounter(ctx context.Context, id string, counter models.PublicationCounter, delta int) (*models.Publication, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var publication models.Publication
	err = r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": objID},
		bson.M{"$inc": bson.M{string(counter): delta}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&publication)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &publication, nil
}

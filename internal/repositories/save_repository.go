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

// SaveRepository defines the interface for bookmark edge operations
type SaveRepository interface {
	CreateSave(ctx context.Context, save *models.Save) error
	DeleteSave(ctx context.Context, user, itemID, itemType string) (bool, error)
	IsSaved(ctx context.Context, user, itemID, itemType string) (bool, error)
	GetSavesByUser(ctx context.Context, user, itemType string) ([]models.Save, error)
	EnsureIndexes(ctx context.Context) error
}

// MongoSaveRepository implements SaveRepository for MongoDB
type MongoSaveRepository struct {
	collection *mongo.Collection
}

// NewMongoSaveRepository creates a new MongoSaveRepository
func NewMongoSaveRepository(db *mongo.Database) *MongoSaveRepository {
	return &MongoSaveRepository{collection: db.Collection("saves")}
}

// EnsureIndexes creates the unique (user, itemId, itemType) index.
func (r *MongoSaveRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "itemId", Value: 1}, {Key: "itemType", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreateSave inserts a bookmark edge. Returns ErrAlreadyExists when the user
// has already saved the item.
func (r *MongoSaveRepository) CreateSave(ctx context.Context, save *models.Save) error {
	save.ID = primitive.NewObjectID()
	save.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, save)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	return err
}

// DeleteSave removes a bookmark edge and reports whether a removal occurred.
func (r *MongoSaveRepository) DeleteSave(ctx context.Context, user, itemID, itemType string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user": user, "itemId": itemID, "itemType": itemType})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// IsSaved reports whether the user has saved the item.
func (r *MongoSaveRepository) IsSaved(ctx context.Context, user, itemID, itemType string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user": user, "itemId": itemID, "itemType": itemType})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetSavesByUser retrieves a user's bookmarks newest first, optionally
// filtered by item type.
func (r *MongoSaveRepository) GetSavesByUser(ctx context.Context, user, itemType string) ([]models.Save, error) {
	filter := bson.M{"user": user}
	if itemType != "" {
		filter["itemType"] = itemType
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	saves := []models.Save{}
	if err = cursor.All(ctx, &saves); err != nil {
		return nil, err
	}
	return saves, nil
}

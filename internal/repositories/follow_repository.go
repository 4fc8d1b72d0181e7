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

// FollowRepository defines the interface for follow edge operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *models.Follow) error
	DeleteFollow(ctx context.Context, follower, followed string) (bool, error)
	IsFollowing(ctx context.Context, follower, followed string) (bool, error)
	EnsureIndexes(ctx context.Context) error
}

// MongoFollowRepository implements FollowRepository for MongoDB
type MongoFollowRepository struct {
	collection *mongo.Collection
}

// NewMongoFollowRepository creates a new MongoFollowRepository
func NewMongoFollowRepository(db *mongo.Database) *MongoFollowRepository {
	return &MongoFollowRepository{collection: db.Collection("follows")}
}

// EnsureIndexes creates the unique (follower, followed) index.
func (r *MongoFollowRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "follower", Value: 1}, {Key: "followed", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreateFollow inserts a follow edge. Returns ErrAlreadyExists when the
// follower already follows the target.
func (r *MongoFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	follow.ID = primitive.NewObjectID()
	follow.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, follow)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	return err
}

// DeleteFollow removes a follow edge and reports whether a removal occurred.
func (r *MongoFollowRepository) DeleteFollow(ctx context.Context, follower, followed string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"follower": follower, "followed": followed})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// IsFollowing reports whether the follower follows the target.
func (r *MongoFollowRepository) IsFollowing(ctx context.Context, follower, followed string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"follower": follower, "followed": followed})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

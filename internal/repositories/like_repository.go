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

// LikeRepository defines the interface for like edge operations
type LikeRepository interface {
	CreateLike(ctx context.Context, like *models.Like) error
	DeleteLike(ctx context.Context, user, postID string) (bool, error)
	HasLiked(ctx context.Context, user, postID string) (bool, error)
	CountByPost(ctx context.Context, postID string) (int64, error)
	EnsureIndexes(ctx context.Context) error
}

// MongoLikeRepository implements LikeRepository for MongoDB
type MongoLikeRepository struct {
	collection *mongo.Collection
}

// NewMongoLikeRepository creates a new MongoLikeRepository
func NewMongoLikeRepository(db *mongo.Database) *MongoLikeRepository {
	return &MongoLikeRepository{collection: db.Collection("likes")}
}

// EnsureIndexes creates the unique (user, postId) index that turns a
// double-like into a duplicate-key error.
func (r *MongoLikeRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}, {Key: "postId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// CreateLike inserts a like edge. Returns ErrAlreadyExists when the user has
// already liked the post.
func (r *MongoLikeRepository) CreateLike(ctx context.Context, like *models.Like) error {
	like.ID = primitive.NewObjectID()
	like.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, like)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	return err
}

// DeleteLike removes a like edge and reports whether a removal occurred.
func (r *MongoLikeRepository) DeleteLike(ctx context.Context, user, postID string) (bool, error) {
	res, err := r.collection.DeleteOne(ctx, bson.M{"user": user, "postId": postID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// HasLiked reports whether the user has liked the post.
func (r *MongoLikeRepository) HasLiked(ctx context.Context, user, postID string) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"user": user, "postId": postID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountByPost counts the like documents for a post. This is the live count,
// as opposed to the denormalized counter on the publication.
func (r *MongoLikeRepository) CountByPost(ctx context.Context, postID string) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{"postId": postID})
}

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

// ArticleRepository defines the interface for article data operations.
// Articles are only ever created as part of the publication creation flow.
type ArticleRepository interface {
	CreateArticles(ctx context.Context, articles []models.Article) ([]models.Article, error)
	GetArticleByID(ctx context.Context, id string) (*models.Article, error)
	GetAllArticles(ctx context.Context) ([]models.Article, error)
	GetArticlesByPublication(ctx context.Context, publicationID string) ([]models.Article, error)
	DeleteArticlesByPublication(ctx context.Context, publicationID string) error
	AdjustSavesCount(ctx context.Context, id string, delta int) error
	EnsureIndexes(ctx context.Context) error
}

// MongoArticleRepository implements ArticleRepository for MongoDB
type MongoArticleRepository struct {
	collection *mongo.Collection
}

// NewMongoArticleRepository creates a new MongoArticleRepository
func NewMongoArticleRepository(db *mongo.Database) *MongoArticleRepository {
	return &MongoArticleRepository{collection: db.Collection("articles")}
}

// EnsureIndexes creates the publicationId lookup index.
func (r *MongoArticleRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "publicationId", Value: 1}},
	})
	return err
}

// CreateArticles bulk-inserts articles and returns them with assigned IDs.
func (r *MongoArticleRepository) CreateArticles(ctx context.Context, articles []models.Article) ([]models.Article, error) {
	if len(articles) == 0 {
		return []models.Article{}, nil
	}

	now := time.Now()
	docs := make([]interface{}, len(articles))
	for i := range articles {
		articles[i].ID = primitive.NewObjectID()
		articles[i].CreatedAt = now
		docs[i] = articles[i]
	}

	_, err := r.collection.InsertMany(ctx, docs)
	if err != nil {
		return nil, err
	}
	return articles, nil
}

// GetArticleByID retrieves an article by its hex ID.
func (r *MongoArticleRepository) GetArticleByID(ctx context.Context, id string) (*models.Article, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var article models.Article
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&article)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &article, nil
}

// GetAllArticles retrieves every article, newest first.
func (r *MongoArticleRepository) GetAllArticles(ctx context.Context) ([]models.Article, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	articles := []models.Article{}
	if err = cursor.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// GetArticlesByPublication retrieves the articles attached to a publication.
// An unknown publication simply yields an empty slice.
func (r *MongoArticleRepository) GetArticlesByPublication(ctx context.Context, publicationID string) ([]models.Article, error) {
	objID, err := primitive.ObjectIDFromHex(publicationID)
	if err != nil {
		return []models.Article{}, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"publicationId": objID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	articles := []models.Article{}
	if err = cursor.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

// DeleteArticlesByPublication removes every article attached to a publication.
func (r *MongoArticleRepository) DeleteArticlesByPublication(ctx context.Context, publicationID string) error {
	objID, err := primitive.ObjectIDFromHex(publicationID)
	if err != nil {
		return nil
	}
	_, err = r.collection.DeleteMany(ctx, bson.M{"publicationId": objID})
	return err
}

// AdjustSavesCount atomically adjusts an article's saves counter.
func (r *MongoArticleRepository) AdjustSavesCount(ctx context.Context, id string, delta int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": objID}, bson.M{"$inc": bson.M{"savesCount": delta}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

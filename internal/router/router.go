package router

import (
	"context"
	"log"
	"time"

	"github.com/lookshare/backend/internal/handlers"
	"github.com/lookshare/backend/internal/repositories"
	"github.com/lookshare/backend/internal/uploads"
	"github.com/lookshare/backend/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	e.Use(eMiddleware.Secure())
	if cfg.Env != "production" {
		e.Use(eMiddleware.Logger())
	}
	log.Println("Global middleware configured.")
}

// EnsureIndexer is implemented by repositories that maintain collection indexes.
type EnsureIndexer interface {
	EnsureIndexes(ctx context.Context) error
}

// SetupRoutes constructs the repositories, ensures collection indexes and
// registers all application routes.
func SetupRoutes(e *echo.Echo, mgClient *mongo.Client, cfg *config.Config) error {
	db := mgClient.Database(cfg.MongoDB)

	photoStore, err := uploads.NewStore(cfg.UploadsDir)
	if err != nil {
		return err
	}

	// --- Initialize Repositories ---
	publicationRepo := repositories.NewMongoPublicationRepository(db)
	articleRepo := repositories.NewMongoArticleRepository(db)
	viewedRepo := repositories.NewMongoViewedPublicationRepository(db)
	likeRepo := repositories.NewMongoLikeRepository(db)
	followRepo := repositories.NewMongoFollowRepository(db)
	saveRepo := repositories.NewMongoSaveRepository(db)
	commentRepo := repositories.NewMongoCommentRepository(db)
	notificationRepo := repositories.NewMongoNotificationRepository(db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range []EnsureIndexer{articleRepo, viewedRepo, likeRepo, followRepo, saveRepo, commentRepo, notificationRepo} {
		if err := r.EnsureIndexes(ctx); err != nil {
			return err
		}
	}
	log.Println("MongoDB indexes ensured for all collections.")

	// Liveness checks and uploaded photo serving
	e.GET("/", handlers.Root)
	e.GET("/health", handlers.HealthCheck)
	e.Static("/uploads", photoStore.Dir())

	api := e.Group("/api")

	publicationHandler := handlers.NewPublicationHandler(publicationRepo, articleRepo, viewedRepo, photoStore)
	publicationHandler.RegisterPublicationRoutes(api)
	log.Println("Publication routes configured.")

	articleHandler := handlers.NewArticleHandler(articleRepo)
	articleHandler.RegisterArticleRoutes(api)
	log.Println("Article routes configured.")

	likeHandler := handlers.NewLikeHandler(likeRepo, publicationRepo, notificationRepo)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	followHandler := handlers.NewFollowHandler(followRepo, notificationRepo)
	followHandler.RegisterFollowRoutes(api)
	log.Println("Follow routes configured.")

	saveHandler := handlers.NewSaveHandler(saveRepo, publicationRepo, articleRepo)
	saveHandler.RegisterSaveRoutes(api)
	log.Println("Save routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, publicationRepo, notificationRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
	return nil
}

package router

import (
	"context"
	"log"
	"time"

	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/kumarharsh-connect/talehaven/internal/handlers"
	"github.com/kumarharsh-connect/talehaven/internal/media"
	"github.com/kumarharsh-connect/talehaven/internal/middleware"
	"github.com/kumarharsh-connect/talehaven/internal/models"
	"github.com/kumarharsh-connect/talehaven/internal/repositories"
	"github.com/kumarharsh-connect/talehaven/internal/services"
	"github.com/kumarharsh-connect/talehaven/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
)

// SetupMiddleware configures global Echo middleware.
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// rdb and firebaseAuth may be nil; the corresponding features degrade.
func SetupRoutes(
	e *echo.Echo,
	cfg *config.Config,
	db *config.DB,
	rdb *redis.Client,
	uploader media.Uploader,
	firebaseAuth *firebaseauth.Client,
) error {
	// Migrate the PostgreSQL side
	if err := db.Postgres.AutoMigrate(&models.Notification{}); err != nil {
		return err
	}
	log.Println("PostgreSQL auto-migrations completed.")

	// --- Initialize Repositories ---
	mongoDB := db.Mongo.Database(cfg.MongoDatabase)
	userRepo := repositories.NewMongoUserRepository(mongoDB)
	postRepo := repositories.NewMongoPostRepository(mongoDB)
	notificationRepo := repositories.NewPostgresNotificationRepository(db.Postgres)

	// Unique indexes are the final arbiter for username/email uniqueness.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	log.Println("MongoDB unique indexes ensured.")

	// --- Initialize Services ---
	authService := services.NewAuthService(userRepo, uploader, cfg.JWTSecret)
	graphService := services.NewGraphService(userRepo, notificationRepo)
	contentService := services.NewContentService(postRepo, userRepo, notificationRepo, uploader)
	feedService := services.NewFeedService(postRepo, userRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api/v1/auth")
	authGroup.Use(middleware.RateLimit(rdb, "auth", 20, time.Minute))
	authHandler := handlers.NewAuthHandler(authService, firebaseAuth, cfg.Env != "development")
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	// --- Protected routes (require session cookie) ---
	api := e.Group("/api/v1")
	api.Use(middleware.Auth(authService))

	authHandler.RegisterSessionRoutes(api)

	userHandler := handlers.NewUserHandler(graphService, authService)
	userHandler.RegisterUserRoutes(api)
	log.Println("User routes configured.")

	postHandler := handlers.NewPostHandler(contentService, feedService)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationService)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	log.Println("All routes configured.")
	return nil
}

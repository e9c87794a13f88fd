package main

import (
	"context"
	"log"

	"cloud.google.com/go/storage"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/kumarharsh-connect/talehaven/internal/media"
	"github.com/kumarharsh-connect/talehaven/internal/metrics"
	"github.com/kumarharsh-connect/talehaven/internal/router"
	"github.com/kumarharsh-connect/talehaven/pkg/config"
	"github.com/kumarharsh-connect/talehaven/pkg/firebase"
	"github.com/kumarharsh-connect/talehaven/pkg/validators"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize databases: %v", err)
	}
	defer db.CloseDB()

	ctx := context.Background()

	// Redis is optional; the rate limiter fails open without it
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unreachable, rate limiting disabled: %v", err)
			rdb = nil
		} else {
			log.Println("Successfully connected to Redis!")
		}
	}

	// Media hosting: Cloud Storage bucket or local directory
	var uploader media.Uploader
	if cfg.MediaBucket != "" {
		storageClient, err := storage.NewClient(ctx)
		if err != nil {
			log.Fatalf("Failed to initialize Cloud Storage client: %v", err)
		}
		defer storageClient.Close()
		uploader = media.NewGCSUploader(storageClient, cfg.MediaBucket)
		log.Println("Media hosting: Cloud Storage bucket", cfg.MediaBucket)
	} else {
		uploader, err = media.NewLocalUploader(cfg.MediaDir, cfg.MediaBaseURL)
		if err != nil {
			log.Fatalf("Failed to initialize local media storage: %v", err)
		}
		log.Println("Media hosting: local directory", cfg.MediaDir)
	}

	// Firebase login exchange is optional
	var firebaseAuth *firebaseauth.Client
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuth = firebaseApp.AuthClient
	}

	// Metrics server
	metricsServer, err := metrics.NewHTTPServer(":" + cfg.MetricsPort)
	if err != nil {
		log.Fatalf("Failed to start metrics server: %v", err)
	}
	defer metricsServer.Shutdown()

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Validator
	e.Validator = validators.NewValidator()

	// Setup routes and dependencies
	if err := router.SetupRoutes(e, cfg, db, rdb, uploader, firebaseAuth); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}

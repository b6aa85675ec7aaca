package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bowl-catalog-backend/internal/config"
	"bowl-catalog-backend/internal/database"
	"bowl-catalog-backend/internal/handlers"
	"bowl-catalog-backend/internal/logger"
	"bowl-catalog-backend/internal/middleware"
	"bowl-catalog-backend/internal/pipeline"
	"bowl-catalog-backend/internal/services"
	"bowl-catalog-backend/internal/supabase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration: %v", err)
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Supabase clients
	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		logger.Fatal("failed to initialize Supabase client: %v", err)
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, cfg.SupabaseStorageBucket)
	if err != nil {
		logger.Fatal("failed to initialize storage client: %v", err)
	}

	realtimeClient := supabase.NewRealtimeClient(supabaseClient.Supabase)

	// Create database client for direct queries
	var dbClient *supabase.DatabaseClient
	if cfg.DatabaseURL == "" {
		logger.Warn("DATABASE_URL not set; migrations skipped and database operations unavailable")
	} else {
		dbClient, err = supabase.NewDatabaseClient(cfg.DatabaseURL)
		if err != nil {
			logger.Warn("failed to initialize database client: %v", err)
			dbClient = nil
		} else {
			defer dbClient.Close()

			// Run migrations
			migrator, err := database.NewMigrator(cfg.DatabaseURL)
			if err != nil {
				logger.Warn("failed to initialize migrator: %v", err)
			} else {
				defer migrator.Close()
				if err := migrator.Run(); err != nil {
					logger.Warn("migration failed: %v", err)
				} else {
					logger.Info("migrations completed successfully")
				}
			}
		}
	}

	// Image pipeline and reconciler need the database
	var imagePipeline *pipeline.Pipeline
	var reconciler *services.Reconciler
	if dbClient != nil {
		imagePipeline = pipeline.New(storageClient, dbClient, cfg.MaxUploadBytes, cfg.UploadConcurrency)
		reconciler = services.NewReconciler(dbClient, storageClient)
	}

	// Initialize handlers (dbClient might be nil, handlers handle this)
	bowlsHandler := handlers.NewBowlsHandler(dbClient, storageClient, realtimeClient)
	imagesHandler := handlers.NewImagesHandler(dbClient, storageClient, realtimeClient, imagePipeline)
	reconcileHandler := handlers.NewReconcileHandler(dbClient, reconciler)

	// Setup router
	router := gin.Default()

	// Health check (no auth)
	router.GET("/health", handlers.HealthHandler)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Bowl routes
	api.POST("/bowls", bowlsHandler.CreateBowl)
	api.GET("/bowls", bowlsHandler.ListBowls)
	api.GET("/bowls/:bowl_id", bowlsHandler.GetBowl)
	api.PUT("/bowls/:bowl_id", bowlsHandler.UpdateBowl)
	api.DELETE("/bowls/:bowl_id", bowlsHandler.DeleteBowl)

	// Image routes
	api.POST("/bowls/:bowl_id/images", imagesHandler.UploadImages)
	api.GET("/bowls/:bowl_id/images", imagesHandler.ListImages)
	api.PUT("/bowls/:bowl_id/images/order", imagesHandler.ReorderImages)
	api.DELETE("/bowls/:bowl_id/images/:image_id", imagesHandler.DeleteImage)

	// Maintenance
	api.POST("/bowls/:bowl_id/reconcile", reconcileHandler.Reconcile)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logger.Fatal("failed to start server: %v", err)
	}
}

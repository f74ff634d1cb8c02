package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fieldscope/api/internal/config"
	"github.com/fieldscope/api/internal/database"
	"github.com/fieldscope/api/internal/handlers"
	"github.com/fieldscope/api/internal/logger"
	"github.com/fieldscope/api/internal/middleware"
	"github.com/fieldscope/api/internal/repository"
	"github.com/fieldscope/api/internal/services"
	"github.com/fieldscope/api/internal/upload"
	"github.com/fieldscope/api/internal/weather"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Fieldscope API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Create database connection pool
	ctx := context.Background()
	db, err := database.NewPostgresPool(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"host": cfg.Database.Host,
			"port": cfg.Database.Port,
			"name": cfg.Database.Name,
		})
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatal("Failed to ensure database schema", err, nil)
	}

	log.Info("Database connection established", map[string]interface{}{
		"host":     cfg.Database.Host,
		"port":     cfg.Database.Port,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	// Prepare document upload storage
	uploads, err := upload.NewStore(cfg.Uploads.Dir, cfg.Uploads.PublicPath)
	if err != nil {
		log.Fatal("Failed to prepare upload directory", err, map[string]interface{}{
			"dir": cfg.Uploads.Dir,
		})
	}

	// Weather client for temperature prefill
	if cfg.Weather.APIKey == "" {
		log.Warn("WEATHER_API_KEY is not set; temperature prefill will fail upstream", nil)
	}
	weatherClient := weather.NewClient(cfg.Weather)

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)

	// Stored documents are served straight from disk
	router.Static(cfg.Uploads.PublicPath, uploads.Dir())

	// Initialize repository and service layers
	soilRepo := repository.NewSoilRepository(db)
	environmentalRepo := repository.NewEnvironmentalRepository(db)
	surveyorRepo := repository.NewSurveyorRepository(db)

	soilService := services.NewSoilService(soilRepo, log)
	environmentalService := services.NewEnvironmentalService(environmentalRepo, log)
	surveyorService := services.NewSurveyorService(surveyorRepo, log)

	// Initialize handlers
	soilHandler := handlers.NewSoilHandler(soilService, uploads)
	environmentalHandler := handlers.NewEnvironmentalHandler(environmentalService, uploads)
	surveyorHandler := handlers.NewSurveyorHandler(surveyorService, uploads)
	weatherHandler := handlers.NewWeatherHandler(weatherClient)

	// Register API routes
	api := router.Group("/api")
	{
		api.GET("/info", healthHandler.Info)
		api.GET("/weather/temperature", weatherHandler.Temperature)

		api.POST("/soil-report", soilHandler.Create)
		api.GET("/soil-reports", soilHandler.List)
		api.GET("/soil-reports/export", soilHandler.Export)
		api.GET("/soil-report/:id", soilHandler.Get)
		api.PUT("/soil-report/:id", soilHandler.Update)
		api.DELETE("/soil-report/:id", soilHandler.Delete)
		api.GET("/soil-report/:id/insights", soilHandler.Insights)

		api.POST("/environmental-report", environmentalHandler.Create)
		api.GET("/environmental-reports", environmentalHandler.List)
		api.GET("/environmental-reports/export", environmentalHandler.Export)
		api.GET("/environmental-report/:id", environmentalHandler.Get)
		api.PUT("/environmental-report/:id", environmentalHandler.Update)
		api.DELETE("/environmental-report/:id", environmentalHandler.Delete)
		api.GET("/environmental-report/:id/insights", environmentalHandler.Insights)

		api.POST("/surveyor-report", surveyorHandler.Create)
		api.GET("/surveyor-reports", surveyorHandler.List)
		api.GET("/surveyor-reports/export", surveyorHandler.Export)
		api.GET("/surveyor-report/:id", surveyorHandler.Get)
		api.PUT("/surveyor-report/:id", surveyorHandler.Update)
		api.DELETE("/surveyor-report/:id", surveyorHandler.Delete)
		api.GET("/surveyor-report/:id/insights", surveyorHandler.Insights)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}

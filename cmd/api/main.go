package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-autofiller-backend/config"
	_ "go-autofiller-backend/docs" // Important for Swagger
	v1 "go-autofiller-backend/internal/delivery/http/v1"
	"go-autofiller-backend/internal/repository/postgres"
	"go-autofiller-backend/internal/usecase"
	"go-autofiller-backend/pkg/database"
	"go-autofiller-backend/pkg/logger"
	"go-autofiller-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           Job Autofiller API
// @version         1.0.0
// @description     Backend that receives applicant profiles from the browser extension and upserts them into PostgreSQL.
// @host            localhost:8000
// @BasePath        /
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting job autofiller backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Repository + Schema
	profileRepo := postgres.NewProfileRepository(dbPool)
	if err := profileRepo.EnsureSchema(context.Background()); err != nil {
		logger.Log.Error("Failed to ensure database schema", "error", err)
		os.Exit(1)
	}

	// 5. Setup Redis (optional, rate limiting only)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
	}
	defer redis.Close()

	// 6. Setup UseCases
	validate := validator.New()
	profileUC := usecase.NewProfileUsecase(profileRepo, validate)
	healthUC := usecase.NewHealthUsecase(v1.ServiceName)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ProfileUC: profileUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 8. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}

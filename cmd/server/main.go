package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"gymtrack/gym-app/internal/api"
	"gymtrack/gym-app/internal/config"
	"gymtrack/gym-app/internal/metrics"
	"gymtrack/gym-app/internal/repository/record"
	"gymtrack/gym-app/internal/service"
	"gymtrack/gym-app/internal/storage"
	"gymtrack/gym-app/internal/store"
	memorystore "gymtrack/gym-app/internal/store/memory"
	mongostore "gymtrack/gym-app/internal/store/mongo"
	redisstore "gymtrack/gym-app/internal/store/redis"
)

// @title Gym App API
// @version 1.0
// @description API for trainers authoring workout plans and trainees tracking execution.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Gym App Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	log.Printf("Configuration loaded (store driver: %s).", cfg.Store.Driver)

	// --- Record Store ---
	var recordStore store.RecordStore
	revoker := service.NewMemoryTokenRevoker()

	switch cfg.Store.Driver {
	case "redis":
		client, err := redisstore.Connect(cfg.Store.Redis.Addr, cfg.Store.Redis.Password, cfg.Store.Redis.DB)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to Redis: %v", err)
		}
		defer func() {
			log.Println("Closing Redis client...")
			if err := client.Close(); err != nil {
				log.Printf("ERROR: Failed to close Redis client: %v", err)
			}
		}()
		recordStore = redisstore.New(client)
		revoker = service.NewRedisTokenRevoker(client)
		log.Println("Redis record store ready.")
	case "mongo":
		client, err := mongostore.ConnectDB(cfg.Store.Mongo.URI)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
		}
		defer func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongostore.DisconnectDB(client); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}()
		recordStore = mongostore.New(client.Database(cfg.Store.Mongo.Name))
		log.Println("MongoDB record store ready.")
	case "memory":
		log.Println("WARN: Using in-memory record store; all data is lost on shutdown.")
		recordStore = memorystore.New()
	default:
		log.Fatalf("FATAL: Unknown store driver %q (expected redis, mongo or memory)", cfg.Store.Driver)
	}

	// --- File Storage ---
	log.Println("Initializing file storage service...")
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
	}

	// --- Repositories ---
	userRepo := record.NewUserRepository(recordStore)
	workoutRepo := record.NewWorkoutRepository(recordStore)

	// --- Services ---
	authService := service.NewAuthService(userRepo, revoker, cfg.JWT.Secret, cfg.JWT.Expiration)
	trainerService := service.NewTrainerService(userRepo, workoutRepo)
	traineeService := service.NewTraineeService(userRepo, workoutRepo)
	profileService := service.NewProfileService(userRepo, fileStorage)

	// --- Metrics and Router ---
	metrics.Init()
	router := gin.Default() // Includes Logger and Recovery middleware

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, revoker, authService, trainerService, traineeService, profileService)

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("FATAL: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

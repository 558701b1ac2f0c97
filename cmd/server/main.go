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
	"github.com/orchid-haven/orchid-backend/internal/audit"
	"github.com/orchid-haven/orchid-backend/internal/config"
	"github.com/orchid-haven/orchid-backend/internal/events"
	"github.com/orchid-haven/orchid-backend/internal/handler"
	"github.com/orchid-haven/orchid-backend/internal/models"
	"github.com/orchid-haven/orchid-backend/internal/repository"
	"github.com/orchid-haven/orchid-backend/internal/service"
	"github.com/orchid-haven/orchid-backend/internal/storage"
	"github.com/orchid-haven/orchid-backend/internal/validation"
	"github.com/orchid-haven/orchid-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	serviceName     = "orchid-backend"
	shutdownTimeout = 10 * time.Second
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	log.Println("Config loaded successfully")

	if err := logger.Init(serviceName, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.JWTSecretGenerated {
		logger.Log.Warn("JWT_SECRET not set, using a random secret; tokens will not survive a restart")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize activity journal
	journal, err := audit.Open(cfg.AuditLogPath)
	if err != nil {
		logger.Log.Fatal("Failed to open activity journal", zap.String("path", cfg.AuditLogPath), zap.Error(err))
	}
	defer journal.Close()

	if err := journal.Compact(cfg.AuditLogMaxEntries); err != nil {
		logger.Log.Warn("Failed to compact activity journal", zap.Error(err))
	}

	// Initialize Redis (optional: rate limits and the shared live feed)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = connectRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer redisClient.Close()
	}

	// Event sinks: log and journal locally; the live feed goes through
	// Redis when configured so every instance sees every event
	hub := events.NewHub()
	sinks := []events.Sink{events.NewLogSink(logger.Log), journal}
	if redisClient != nil {
		broker := events.NewRedisBroker(redisClient, logger.Log)
		if err := broker.Relay(ctx, hub); err != nil {
			logger.Log.Fatal("Failed to subscribe to event channel", zap.Error(err))
		}
		sinks = append(sinks, broker)
	} else {
		sinks = append(sinks, hub)
	}
	sink := events.Multi(sinks...)

	// Initialize repositories
	seed := &repository.SeedData{}
	if cfg.SeedData {
		seed, err = repository.LoadSeed()
		if err != nil {
			logger.Log.Fatal("Failed to load seed data", zap.Error(err))
		}
	}

	userRepo, err := repository.NewUserRepository(models.User{
		Username:     cfg.AdminUsername,
		PasswordHash: cfg.AdminPasswordHash,
		Role:         models.RoleAdmin,
	})
	if err != nil {
		logger.Log.Fatal("Failed to create user repository", zap.Error(err))
	}
	propertyRepo := repository.NewPropertyRepository(seed.Properties)
	jobRepo := repository.NewJobRepository(seed.Jobs)
	executiveRepo := repository.NewExecutiveRepository(seed.Executives)

	store, err := storage.NewStore(cfg.UploadDir)
	if err != nil {
		logger.Log.Fatal("Failed to prepare upload directory", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	// Initialize services
	v := validation.New()
	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.Environment, sink)
	propertyService := service.NewPropertyService(propertyRepo, v, sink)
	jobService := service.NewJobService(jobRepo, v, sink)
	executiveService := service.NewExecutiveService(executiveRepo, v, sink)
	imageService := service.NewImageService(store, sink)

	router := handler.NewRouter(handler.Dependencies{
		Config:      cfg,
		Logger:      logger.Log,
		AuthService: authService,
		Properties:  propertyService,
		Jobs:        jobService,
		Executives:  executiveService,
		Images:      imageService,
		Validator:   v,
		Journal:     journal,
		Hub:         hub,
		Events:      sink,
		Redis:       redisClient,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("Server starting",
			zap.String("addr", srv.Addr),
			zap.String("environment", cfg.Environment),
			zap.Int("properties", propertyRepo.Count()),
			zap.Int("jobs", jobRepo.Count()),
			zap.Int("executives", executiveRepo.Count()),
			zap.Bool("rate_limit", cfg.RateLimitEnabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down")

	// Websocket connections are hijacked, so Shutdown does not wait for
	// them; closing the hub ends every feed session
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Graceful shutdown failed", zap.Error(err))
	}
}

func connectRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return client, nil
}

package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-forms-gateway/config"
	v1 "go-forms-gateway/internal/delivery/http/v1"
	"go-forms-gateway/internal/domain"
	"go-forms-gateway/internal/repository/postgres"
	"go-forms-gateway/internal/usecase"
	"go-forms-gateway/pkg/database"
	"go-forms-gateway/pkg/logger"
	"go-forms-gateway/pkg/ratelimit"
	"go-forms-gateway/pkg/redis"
	"go-forms-gateway/pkg/relay"
	"go-forms-gateway/pkg/security"
	"go-forms-gateway/pkg/validation"

	"log"
)

func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting forms gateway", "port", cfg.Port)

	// 3. Setup audit store (optional; the gateway relays fine without it)
	var submissionRepo domain.SubmissionRepository
	if cfg.DBUrl != "" {
		dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
		if err != nil {
			logger.Log.Error("Failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer dbPool.Close()
		submissionRepo = postgres.NewSubmissionRepository(dbPool)
	} else {
		logger.Log.Warn("Submission auditing disabled - no DATABASE_URL")
	}

	// 4. Setup Redis for the outer rate limit (optional)
	if err := redis.Initialize(redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}
	defer redis.Close()

	// 5. Setup relay client
	relayClient := relay.NewClient(relay.Config{
		Endpoint:  cfg.RelayEndpoint,
		AccessKey: cfg.RelayAccessKey,
		To:        cfg.ContactEmailTo,
		FromName:  cfg.FromName,
		Redirect:  cfg.RedirectURL,
		Timeout:   time.Duration(cfg.RelayTimeoutSeconds) * time.Second,
	})

	// 6. Setup the submission pipeline
	formUC := usecase.NewFormUsecase(
		validation.NewContactValidator(),
		security.NewFileValidator(int64(cfg.MaxFileSizeMB)*1024*1024),
		ratelimit.NewRegistry(),
		relayClient,
		submissionRepo,
		cfg.FallbackPhone,
	)

	// 7. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		FormUC: formUC,
		Config: cfg,
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

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
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/Jedelmann90/pii-detection-tool/internal/adapter/client"
	"github.com/Jedelmann90/pii-detection-tool/internal/adapter/http/router"
	"github.com/Jedelmann90/pii-detection-tool/internal/domain/entity"
	"github.com/Jedelmann90/pii-detection-tool/internal/domain/service"
	"github.com/Jedelmann90/pii-detection-tool/internal/infrastructure/cache"
	"github.com/Jedelmann90/pii-detection-tool/internal/infrastructure/config"
	"github.com/Jedelmann90/pii-detection-tool/internal/infrastructure/logger"
	"github.com/Jedelmann90/pii-detection-tool/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present, then configuration
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize the model transport
	generator, checker, err := newModelTransport(cfg)
	if err != nil {
		log.Error("Failed to initialize model transport", zap.Error(err))
		return fmt.Errorf("failed to initialize model transport: %w", err)
	}
	log.Info("Model transport initialized",
		zap.String("provider", cfg.Model.Provider),
		zap.String("model_id", cfg.Model.ModelID),
	)

	// Initialize Redis (optional, continue without rate limiting)
	redisClient, err := cache.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("Failed to connect to Redis, continuing without rate limiting", zap.Error(err))
		redisClient = nil
	} else {
		log.Info("Connected to Redis")
	}

	// Initialize usecase
	pricing := entity.Pricing{
		InputCostPer1K:  cfg.Pricing.InputCostPer1K,
		OutputCostPer1K: cfg.Pricing.OutputCostPer1K,
	}
	analysisUC := usecase.NewAnalysisUsecase(generator, pricing, cfg.Analysis.MaxSamples, cfg.Analysis.Workers)

	// Setup router
	r := router.Setup(analysisUC, checker, redisClient, log, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	// Close Redis connection
	if redisClient != nil {
		_ = redisClient.Close()
	}

	log.Info("Server exited")
	return nil
}

// newModelTransport builds the configured text-generation transport.
func newModelTransport(cfg *config.Config) (service.TextGenerator, service.HealthChecker, error) {
	genConfig := client.GenerationConfig{
		MaxOutputTokens: cfg.Model.MaxOutputTokens,
		Temperature:     cfg.Model.Temperature,
		TopP:            cfg.Model.TopP,
	}

	switch cfg.Model.Provider {
	case "bedrock":
		bedrock, err := client.NewBedrockClient(context.Background(), cfg.Model.Region, cfg.Model.ModelID, genConfig)
		if err != nil {
			return nil, nil, err
		}
		return bedrock, bedrock, nil
	case "http":
		timeout := time.Duration(cfg.Model.TimeoutSeconds) * time.Second
		modelClient := client.NewModelClient(cfg.Model.Endpoint, genConfig, timeout)
		return client.NewHTTPGenerator(modelClient), modelClient, nil
	default:
		return nil, nil, fmt.Errorf("unknown model provider %q", cfg.Model.Provider)
	}
}

package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Jedelmann90/pii-detection-tool/internal/adapter/http/handler"
	"github.com/Jedelmann90/pii-detection-tool/internal/adapter/http/middleware"
	"github.com/Jedelmann90/pii-detection-tool/internal/domain/service"
	"github.com/Jedelmann90/pii-detection-tool/internal/infrastructure/config"
	"github.com/Jedelmann90/pii-detection-tool/internal/usecase"
)

// Setup creates and configures the Gin router
func Setup(analysisUC usecase.AnalysisUsecase, model service.HealthChecker, redisClient *redis.Client, logger *zap.Logger, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recovery(logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(model, redisClient)
	router.GET("/", healthHandler.Root)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize handlers
	analysisHandler := handler.NewAnalysisHandler(analysisUC, cfg.Analysis.MaxUploadBytes)

	// API v1 routes; model calls cost money, so the group is rate limited
	v1 := router.Group("/api/v1")
	v1.Use(middleware.RateLimit(redisClient, cfg.Redis.RateLimitPerMinute, time.Minute, logger))
	{
		v1.POST("/analyze-csv", analysisHandler.AnalyzeCSV)
		v1.POST("/analyze-csv/batch", analysisHandler.AnalyzeBatch)
		v1.POST("/analyze-column", analysisHandler.AnalyzeColumn)
		v1.POST("/estimate-cost", analysisHandler.EstimateCost)
	}

	return router
}

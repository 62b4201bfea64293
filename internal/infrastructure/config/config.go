package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all service configuration
type Config struct {
	Server   ServerConfig
	Model    ModelConfig
	Pricing  PricingConfig
	Analysis AnalysisConfig
	Redis    RedisConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string
	Port int
	Mode string
}

// ModelConfig holds remote text-generation model configuration
type ModelConfig struct {
	Provider        string
	Endpoint        string
	ModelID         string
	Region          string
	MaxOutputTokens int
	Temperature     float64
	TopP            float64
	TimeoutSeconds  int
}

// PricingConfig holds the per-1K-token rates used for cost reporting
type PricingConfig struct {
	InputCostPer1K  float64
	OutputCostPer1K float64
}

// AnalysisConfig holds analysis pipeline configuration
type AnalysisConfig struct {
	MaxSamples     int
	Workers        int
	MaxUploadBytes int64
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host               string
	Port               int
	Password           string
	DB                 int
	RateLimitPerMinute int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from defaults and PIIDETECT_-prefixed
// environment variables.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("PIIDETECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")

	// Model
	v.SetDefault("model.provider", "http")
	v.SetDefault("model.endpoint", "http://localhost:8001")
	v.SetDefault("model.modelid", "amazon.titan-text-express-v1")
	v.SetDefault("model.region", "us-gov-west-1")
	v.SetDefault("model.maxoutputtokens", 1000)
	v.SetDefault("model.temperature", 0.1)
	v.SetDefault("model.topp", 0.9)
	v.SetDefault("model.timeoutseconds", 30)

	// Pricing (Titan Text Express v1)
	v.SetDefault("pricing.inputcostper1k", 0.0008)
	v.SetDefault("pricing.outputcostper1k", 0.0016)

	// Analysis
	v.SetDefault("analysis.maxsamples", 5)
	v.SetDefault("analysis.workers", 4)
	v.SetDefault("analysis.maxuploadbytes", 10<<20)

	// Redis
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ratelimitperminute", 60)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)

	assert.Equal(t, "http", cfg.Model.Provider)
	assert.Equal(t, "http://localhost:8001", cfg.Model.Endpoint)
	assert.Equal(t, "amazon.titan-text-express-v1", cfg.Model.ModelID)
	assert.Equal(t, 1000, cfg.Model.MaxOutputTokens)
	assert.InDelta(t, 0.1, cfg.Model.Temperature, 1e-9)
	assert.InDelta(t, 0.9, cfg.Model.TopP, 1e-9)
	assert.Equal(t, 30, cfg.Model.TimeoutSeconds)

	assert.InDelta(t, 0.0008, cfg.Pricing.InputCostPer1K, 1e-9)
	assert.InDelta(t, 0.0016, cfg.Pricing.OutputCostPer1K, 1e-9)

	assert.Equal(t, 5, cfg.Analysis.MaxSamples)
	assert.Equal(t, 4, cfg.Analysis.Workers)
	assert.Equal(t, int64(10<<20), cfg.Analysis.MaxUploadBytes)

	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 60, cfg.Redis.RateLimitPerMinute)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PIIDETECT_SERVER_PORT", "9090")
	t.Setenv("PIIDETECT_SERVER_MODE", "release")
	t.Setenv("PIIDETECT_MODEL_PROVIDER", "bedrock")
	t.Setenv("PIIDETECT_MODEL_ENDPOINT", "http://model:9000")
	t.Setenv("PIIDETECT_ANALYSIS_MAXSAMPLES", "10")
	t.Setenv("PIIDETECT_ANALYSIS_WORKERS", "8")
	t.Setenv("PIIDETECT_PRICING_INPUTCOSTPER1K", "0.002")
	t.Setenv("PIIDETECT_LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "bedrock", cfg.Model.Provider)
	assert.Equal(t, "http://model:9000", cfg.Model.Endpoint)
	assert.Equal(t, 10, cfg.Analysis.MaxSamples)
	assert.Equal(t, 8, cfg.Analysis.Workers)
	assert.InDelta(t, 0.002, cfg.Pricing.InputCostPer1K, 1e-9)
	assert.Equal(t, "debug", cfg.Log.Level)
}

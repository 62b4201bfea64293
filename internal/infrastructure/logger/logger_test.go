package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jedelmann90/pii-detection-tool/internal/infrastructure/config"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LogConfig
	}{
		{name: "json format", cfg: config.LogConfig{Level: "info", Format: "json"}},
		{name: "console format", cfg: config.LogConfig{Level: "debug", Format: "console"}},
		{name: "invalid level falls back to info", cfg: config.LogConfig{Level: "bogus", Format: "json"}},
		{name: "empty config", cfg: config.LogConfig{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(&tt.cfg)

			require.NoError(t, err)
			require.NotNil(t, logger)
			assert.NotPanics(t, func() {
				logger.Info("test message")
			})
		})
	}
}

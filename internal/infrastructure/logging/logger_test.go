package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/complex-planner/internal/infrastructure/config"
)

func TestNewLogger_File(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "logs", "planner.log")
	cfg := config.LoggingConfig{Level: "info", Format: "json", Output: "file", FilePath: path}

	// Act
	logger, err := NewLogger(cfg)
	require.NoError(t, err)
	logger.Info("optimizer finished")
	logger.Debug("hidden")
	_ = logger.Sync()

	// Assert
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "optimizer finished")
	assert.NotContains(t, string(data), "hidden")
}

func TestNewLogger_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LoggingConfig
	}{
		{"level", config.LoggingConfig{Level: "loud", Format: "json", Output: "stderr"}},
		{"format", config.LoggingConfig{Level: "info", Format: "xml", Output: "stderr"}},
		{"output", config.LoggingConfig{Level: "info", Format: "json", Output: "syslog"}},
		{"file without path", config.LoggingConfig{Level: "info", Format: "json", Output: "file"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			_, err := NewLogger(tt.cfg)

			// Assert
			assert.Error(t, err)
		})
	}
}

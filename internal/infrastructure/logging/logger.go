package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/andrescamacho/complex-planner/internal/infrastructure/config"
)

// NewLogger builds a zap logger from the logging configuration
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	var zc zap.Config
	switch cfg.Format {
	case "text":
		zc = zap.NewDevelopmentConfig()
	case "json", "":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", cfg.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableCaller = !cfg.IncludeCaller
	zc.DisableStacktrace = !cfg.IncludeStacktrace

	switch cfg.Output {
	case "stdout":
		zc.OutputPaths = []string{"stdout"}
	case "stderr", "":
		zc.OutputPaths = []string{"stderr"}
	case "file":
		if cfg.FilePath == "" {
			return nil, fmt.Errorf("log output 'file' requires a file path")
		}
		if dir := filepath.Dir(cfg.FilePath); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
			}
		}
		zc.OutputPaths = []string{cfg.FilePath}
	default:
		return nil, fmt.Errorf("invalid log output: %s", cfg.Output)
	}
	zc.ErrorOutputPaths = []string{"stderr"}

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

package config

import (
	"github.com/andrescamacho/complex-planner/internal/domain/factorycomplex"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	cfg.Database.setDefaults()

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "warn"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Planner defaults
	if cfg.Planner.MaxPasses == 0 {
		cfg.Planner.MaxPasses = factorycomplex.DefaultMaxPasses
	}
}

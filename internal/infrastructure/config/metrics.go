package config

// MetricsConfig holds metrics collection configuration
type MetricsConfig struct {
	// Enabled controls whether metrics collection is active
	Enabled bool `mapstructure:"enabled"`

	// Textfile receives the registry in node exporter textfile format when
	// a command finishes; empty disables the export
	Textfile string `mapstructure:"textfile"`
}

package config

// PlannerConfig holds calculation engine settings
type PlannerConfig struct {
	// Game used for new complexes and legacy documents
	DefaultGame string `mapstructure:"default_game"`

	// Catalog file or directory; empty uses the builtin catalogs
	CatalogPath string `mapstructure:"catalog_path"`

	// Upper bound on greedy fill passes per optimizer run
	MaxPasses int `mapstructure:"max_passes" validate:"min=1"`

	// Synthesize producers for deficits on new complexes
	AutoFill *bool `mapstructure:"auto_fill"`

	// Factions never used as pivotal-good producers or kit sellers
	ExcludedFactions []string `mapstructure:"excluded_factions"`
}

// AutoFillEnabled reports the auto-fill setting, defaulting to true
func (p PlannerConfig) AutoFillEnabled() bool {
	return p.AutoFill == nil || *p.AutoFill
}

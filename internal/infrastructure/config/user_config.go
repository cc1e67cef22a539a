package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// UserConfig represents user preferences stored in ~/.complex-planner/config.json
type UserConfig struct {
	// Game used when a command does not name one
	DefaultGame string `json:"default_game,omitempty"`

	// Factions excluded from pivotal-good exploration and kit purchases
	ExcludedFactions []string `json:"excluded_factions,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a handler for ~/.complex-planner/config.json
func NewUserConfigHandler() (*UserConfigHandler, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	return NewUserConfigHandlerAt(filepath.Join(homeDir, ".complex-planner", "config.json")), nil
}

// NewUserConfigHandlerAt creates a handler for an explicit config file path
func NewUserConfigHandlerAt(configPath string) *UserConfigHandler {
	return &UserConfigHandler{configPath: configPath}
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(config *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(h.configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetDefaultGame sets the default game
func (h *UserConfigHandler) SetDefaultGame(gameID string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.DefaultGame = gameID
	return h.Save(config)
}

// ExcludeFaction adds a faction to the exclusion list
func (h *UserConfigHandler) ExcludeFaction(factionID string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	for _, id := range config.ExcludedFactions {
		if id == factionID {
			return nil
		}
	}
	config.ExcludedFactions = append(config.ExcludedFactions, factionID)
	sort.Strings(config.ExcludedFactions)
	return h.Save(config)
}

// IncludeFaction removes a faction from the exclusion list
func (h *UserConfigHandler) IncludeFaction(factionID string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	kept := config.ExcludedFactions[:0]
	for _, id := range config.ExcludedFactions {
		if id != factionID {
			kept = append(kept, id)
		}
	}
	config.ExcludedFactions = kept
	return h.Save(config)
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}

// Apply overlays user preferences onto the planner configuration
func (u *UserConfig) Apply(p *PlannerConfig) {
	if u.DefaultGame != "" {
		p.DefaultGame = u.DefaultGame
	}

	seen := make(map[string]bool, len(p.ExcludedFactions))
	for _, id := range p.ExcludedFactions {
		seen[id] = true
	}
	for _, id := range u.ExcludedFactions {
		if !seen[id] {
			p.ExcludedFactions = append(p.ExcludedFactions, id)
			seen[id] = true
		}
	}
}

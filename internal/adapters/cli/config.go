package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/complex-planner/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage planner configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (CP_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default game, excluded factions) are stored in
~/.complex-planner/config.json

Examples:
  complex-planner config show
  complex-planner config set-game x3ap
  complex-planner config exclude-faction teladi
  complex-planner config include-faction teladi`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetGameCommand())
	cmd.AddCommand(newConfigExcludeFactionCommand())
	cmd.AddCommand(newConfigIncludeFactionCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.Default()
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Fprintln(out, "Complex Planner Configuration")
			fmt.Fprintln(out, "=============================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:       %s\n", userConfigHandler.GetConfigPath())
			fmt.Fprintf(out, "  Default Game:      %s\n", orNotSet(userCfg.DefaultGame))
			fmt.Fprintf(out, "  Excluded Factions: %s\n", orNotSet(strings.Join(userCfg.ExcludedFactions, ", ")))

			fmt.Fprintln(out, "\nPlanner:")
			fmt.Fprintf(out, "  Default Game:      %s\n", orNotSet(cfg.Planner.DefaultGame))
			fmt.Fprintf(out, "  Catalog Path:      %s\n", orNotSet(cfg.Planner.CatalogPath))
			fmt.Fprintf(out, "  Auto-fill:         %t\n", cfg.Planner.AutoFillEnabled())
			fmt.Fprintf(out, "  Max Passes:        %d\n", cfg.Planner.MaxPasses)
			fmt.Fprintf(out, "  Excluded Factions: %s\n", orNotSet(strings.Join(cfg.Planner.ExcludedFactions, ", ")))

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:              %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:              %s\n", cfg.Database.Path)
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:               %s\n", maskPassword(cfg.Database.URL))
			default:
				fmt.Fprintf(out, "  Host:              %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:              %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:          %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:              %s\n", cfg.Database.User)
				fmt.Fprintf(out, "  Max Connections:   %d\n", cfg.Database.Pool.MaxOpen)
			}

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:           %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Textfile:          %s\n", orNotSet(cfg.Metrics.Textfile))

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:             %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:            %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:            %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigSetGameCommand creates the config set-game subcommand
func newConfigSetGameCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-game <game-id>",
		Short: "Set the default game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.close()

			if _, err := a.registry.Game(args[0]); err != nil {
				return err
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.SetDefaultGame(args[0]); err != nil {
				return fmt.Errorf("failed to set default game: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Default game set to %s\n", args[0])
			return nil
		},
	}
}

// newConfigExcludeFactionCommand creates the config exclude-faction subcommand
func newConfigExcludeFactionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exclude-faction <faction-id>",
		Short: "Never use a faction for the pivotal good or kit purchases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(false)
			if err != nil {
				return err
			}
			defer a.close()

			if err := requireFaction(a, args[0]); err != nil {
				return err
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.ExcludeFaction(args[0]); err != nil {
				return fmt.Errorf("failed to exclude faction: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Faction %s excluded\n", args[0])
			return nil
		},
	}
}

// newConfigIncludeFactionCommand creates the config include-faction subcommand
func newConfigIncludeFactionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "include-faction <faction-id>",
		Short: "Allow an excluded faction again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.IncludeFaction(args[0]); err != nil {
				return fmt.Errorf("failed to include faction: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "✓ Faction %s included\n", args[0])
			return nil
		},
	}
}

// requireFaction checks that some game knows the faction
func requireFaction(a *app, factionID string) error {
	for _, c := range a.registry.Games() {
		if _, err := c.Faction(factionID); err == nil {
			return nil
		}
	}
	return fmt.Errorf("unknown faction: %s", factionID)
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

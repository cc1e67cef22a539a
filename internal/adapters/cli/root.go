package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	gameID     string
	jsonOutput bool
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "complex-planner",
		Short: "Factory complex planner - net goods, fill deficits, shop for buildings",
		Long: `Factory complex planner computes the net goods of a set of factories,
synthesizes the cheapest buildings covering every deficit and prints the
shopping list needed to build the result.

Examples:
  complex-planner plan --building spp-argon-m:2 --suns 150
  complex-planner plan my-complex.yaml --save "Energy Hub"
  complex-planner template decode AJYBAQIA
  complex-planner catalog buildings --game x3tc
  complex-planner complex list
  complex-planner config exclude-faction teladi`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: config.yaml in ., ./configs, /etc/complex-planner)")
	rootCmd.PersistentFlags().StringVar(&gameID, "game", "",
		"Game catalog to use (default: configured default game)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false,
		"Print results as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewTemplateCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewComplexCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	characterID int32
	verbose     bool
	outputJSON  bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "colonysim",
		Short: "Colony simulator - derive and project planetary colony status",
		Long: `colonysim stores planetary colony snapshots, derives their pin and colony
status, and runs what-if simulations of extraction and production.

Examples:
  colonysim colony import colony.json
  colonysim colony list --character 90000001
  colonysim colony status 1021
  colonysim colony simulate 1021 --for 48h --deactivate 7 --drop-route 3
  colonysim catalog set-capacity 2541 12000
  colonysim serve --character 90000001`,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: config.yaml in ., ./configs or /etc/colonysim)")
	rootCmd.PersistentFlags().Int32Var(&characterID, "character", 0,
		"Character ID (defaults to 'colonysim config set-character')")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false,
		"Print results as JSON")

	// Add command groups
	rootCmd.AddCommand(NewColonyCommand())
	rootCmd.AddCommand(NewCatalogCommand())
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewServeCommand())

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

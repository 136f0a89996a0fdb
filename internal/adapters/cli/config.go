package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/colonysim-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage colonysim configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (CS_* prefix, plus DATABASE_URL)
2. Config file (config.yaml)
3. Default values

User preferences (default character) are stored in ~/.colonysim/config.json

Examples:
  colonysim config show
  colonysim config set-character 90000001
  colonysim config clear-character`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCharacterCommand())
	cmd.AddCommand(newConfigClearCharacterCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
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

			fmt.Fprintln(out, "colonysim Configuration")
			fmt.Fprintln(out, "=======================")

			fmt.Fprintln(out, "User Preferences:")
			fmt.Fprintf(out, "  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultCharacterID != nil {
				fmt.Fprintf(out, "  Default Character: %d\n", *userCfg.DefaultCharacterID)
			} else {
				fmt.Fprintf(out, "  Default Character: (not set)\n")
			}

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", maskPassword(cfg.Database.URL))
			case cfg.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", cfg.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", cfg.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", cfg.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", cfg.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", cfg.Database.User)
				fmt.Fprintf(out, "  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)
			}

			fmt.Fprintln(out, "\nSimulation:")
			fmt.Fprintf(out, "  Max Events:       %d\n", cfg.Simulation.MaxEvents)
			fmt.Fprintf(out, "  Default Horizon:  %s\n", cfg.Simulation.DefaultHorizon)

			fmt.Fprintln(out, "\nMetrics:")
			fmt.Fprintf(out, "  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Fprintf(out, "  Endpoint:         http://%s%s\n", cfg.Metrics.Address(), cfg.Metrics.Path)
			fmt.Fprintf(out, "  Poll Interval:    %s\n", cfg.Metrics.PollInterval)

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", cfg.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", cfg.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

// newConfigSetCharacterCommand creates the config set-character subcommand
func newConfigSetCharacterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-character <character-id>",
		Short: "Set the default character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid character id %q", args[0])
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.SetDefaultCharacter(int32(id)); err != nil {
				return fmt.Errorf("failed to set default character: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ Default character set to %d\n", id)
			fmt.Fprintln(out, "Override with --character.")
			return nil
		},
	}
}

// newConfigClearCharacterCommand creates the config clear-character subcommand
func newConfigClearCharacterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-character",
		Short: "Clear the default character",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.ClearDefaultCharacter(); err != nil {
				return fmt.Errorf("failed to clear default character: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "✓ Default character cleared")
			return nil
		},
	}
}

// maskPassword hides the password component of a connection URL
func maskPassword(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.User == nil {
		return raw
	}
	if _, hasPassword := parsed.User.Password(); !hasPassword {
		return raw
	}
	parsed.User = url.UserPassword(parsed.User.Username(), "****")
	return parsed.String()
}

package main

import (
	"fmt"
	"os"

	"github.com/avitaltamir/swipedeck/internal/app"
	"github.com/avitaltamir/swipedeck/internal/config"
	"github.com/avitaltamir/swipedeck/internal/logging"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	// Set the app version for display in the UI
	app.Version = version

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "sd [PANE1] [PANE2]",
		Short: "Swipe between two panes in the terminal",
		Long: `sd shows two panes in one container and lets you drag the front pane
sideways with the mouse to reveal the other.

A pane argument of the form cmd:<command line> runs the command in a
terminal pane; anything else is a file to view. Arguments replace the
configured panes in order.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}
	root.SetVersionTemplate("sd {{.Version}}\n")

	root.PersistentFlags().String("config", "", "config file (default $XDG_CONFIG_HOME/swipedeck/config.toml)")
	root.Flags().String("log-level", "", "log level: trace, debug, info, warn, error or disabled")
	root.Flags().Int("fps", 0, "settle animation frame rate")

	root.AddCommand(newConfigCmd())
	return root
}

// loadConfig reads the config file and applies flag and argument overrides.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("log-level") {
		if cfg.Log.Level, err = cmd.Flags().GetString("log-level"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("fps") {
		if cfg.Animation.FPS, err = cmd.Flags().GetInt("fps"); err != nil {
			return nil, err
		}
	}
	cfg.ApplyArgs(args)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func run(cfg *config.Config) error {
	logger, closer, err := logging.New(cfg.Logging())
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	logger.Info().
		Str("version", version).
		Int("fps", cfg.Animation.FPS).
		Msg("starting")

	p := tea.NewProgram(
		app.New(cfg, logger),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(app.Model); ok && m.Err() != nil {
		return m.Err()
	}
	logger.Info().Msg("exited")
	return nil
}

func newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the configuration file",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configPath(cmd)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Write(config.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := configPath(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	configCmd.AddCommand(initCmd, pathCmd)
	return configCmd
}

// configPath returns the --config flag, or the default location.
func configPath(cmd *cobra.Command) (string, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return "", err
	}
	if path != "" {
		return path, nil
	}
	return config.File()
}

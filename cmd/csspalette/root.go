// Package main provides the CLI entrypoint for csspalette.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/csspalette/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
		dir        string
	}
	logger *slog.Logger
)

// skipConfigAnnotation marks commands that run without loading the config.
const skipConfigAnnotation = "csspalette/skip-config"

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "csspalette",
	Short: "Build editor themes from a website's CSS colours",
	Long: `csspalette keeps local copies of a website's stylesheets and turns the
colours declared in them into editor and terminal themes.

The usual workflow is:

  csspalette fetch      # vendor the latest stylesheets into css/
  csspalette generate   # write palette.json and the theme files into out/

Theme files are not installed automatically; import them into TextMate and
iTerm2 by hand.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Setup logging
		setupLogger()

		if globalOpts.dir != "" {
			if err := os.Chdir(globalOpts.dir); err != nil {
				return fmt.Errorf("failed to change directory: %w", err)
			}
			logger.Debug("changed directory", "dir", globalOpts.dir)
		}

		if cmd.Annotations[skipConfigAnnotation] != "" {
			return nil
		}

		// Load configuration
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		logger.Debug("loaded config", "source", cfg.Source.Kind, "files", len(cfg.Source.Files))

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/csspalette/config.toml)")
	rootCmd.PersistentFlags().StringVarP(&globalOpts.dir, "dir", "C", "",
		"Run as if started in this directory")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

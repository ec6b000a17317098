package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/reddington-archives/quote-service/internal/platform/config"
	"github.com/reddington-archives/quote-service/internal/platform/logging"
)

func newRootCommand() *cobra.Command {
	var profileFlag string

	rootCmd := &cobra.Command{
		Use:           "collector",
		Short:         "Quote dataset collector",
		Long:          "Scrapes quote sources, deduplicates the results, and writes the dataset served by the quote API.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVar(&profileFlag, "profile", "local", "Configuration profile to load")

	rootCmd.AddCommand(newRunCommand(&profileFlag))
	rootCmd.AddCommand(newStatsCommand(&profileFlag))

	return rootCmd
}

// loadConfig loads and validates the configuration for the given profile.
func loadConfig(profile string) (*config.Config, error) {
	cfg, err := config.Load(profile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// newLogger builds the collector's logger. Verbose sends debug output to
// the terminal; otherwise only warnings surface so tables stay readable.
func newLogger(cfg *config.Config, out io.Writer, verbose bool) *slog.Logger {
	level := "warn"
	if verbose {
		level = "debug"
	}

	return logging.NewWithWriter(logging.Config{
		Level:   level,
		Format:  cfg.Log.Format,
		Service: "quote-collector",
		Version: cfg.App.Version,
	}, out)
}

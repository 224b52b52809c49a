package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/config"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/logger"
)

// newRootCmd builds the command tree. It is a function rather than a package
// variable so that tests get fresh flag state.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "osr",
		Short:         "Spaced repetition for Obsidian vaults",
		Long:          "osr schedules the flashcards and notes of an Obsidian vault and serves a review API.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("config", "", "config file (default: ./osr.yaml or $HOME/.config/osr/osr.yaml)")

	root.AddCommand(newServeCmd())
	root.AddCommand(newDecksCmd())
	root.AddCommand(newStatsCmd())
	root.AddCommand(newMigrateCmd())
	return root
}

// loadConfig reads the file named by --config, or searches the default
// locations when the flag is empty.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// setupLogger logs to out. Commands that print results log to stderr so the
// output stays readable.
func setupLogger(cfg *config.Config, out io.Writer) (*slog.Logger, error) {
	l, err := logger.SetupWithWriter(cfg.Server, out)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}
	return l, nil
}

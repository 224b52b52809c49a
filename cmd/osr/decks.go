package main

import (
	"context"

	"github.com/spf13/cobra"
)

func newDecksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "Print the deck tree with new, due and total card counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd, func(ctx context.Context, app *application) error {
				tree, err := app.service.DeckTree(ctx)
				if err != nil {
					return err
				}
				renderDeckTree(cmd.OutOrStdout(), tree)
				return nil
			})
		},
	}
}

// withApplication runs fn against a freshly loaded application and cleans up
// afterwards. Logs go to stderr.
func withApplication(cmd *cobra.Command, fn func(ctx context.Context, app *application) error) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := setupLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	app, err := newApplication(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer app.cleanup()
	return fn(ctx, app)
}

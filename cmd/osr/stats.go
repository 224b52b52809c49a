package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/stats"
)

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print review statistics and the due-date forecast",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bucket, _ := cmd.Flags().GetString("bucket")
			g, err := stats.ParseGranularity(bucket)
			if err != nil {
				return err
			}

			return withApplication(cmd, func(ctx context.Context, app *application) error {
				summary, err := app.service.Stats(ctx)
				if err != nil {
					return err
				}
				forecast, err := app.service.Forecast(ctx, g)
				if err != nil {
					return err
				}

				out := cmd.OutOrStdout()
				renderSummary(out, summary)
				renderForecast(out, forecast, time.Now())
				return nil
			})
		},
	}
	cmd.Flags().String("bucket", string(stats.GranularityDay), "forecast bucket: day, week, month, quarter or year")
	return cmd
}

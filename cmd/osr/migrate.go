package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/config"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/vault"
)

// migrateEnv is what every migrate subcommand works with.
type migrateEnv struct {
	config   *config.Config
	logger   *slog.Logger
	db       *sql.DB
	provider *goose.Provider
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the schedule database schema",
		Long:  "Manage the schema of the postgres or sqlite schedule store. The vault driver keeps schedules in the notes and has nothing to migrate.",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, func(ctx context.Context, env *migrateEnv) error {
				results, err := env.provider.Up(ctx)
				if err != nil {
					return fmt.Errorf("failed to apply migrations: %w", err)
				}
				printResults(cmd.OutOrStdout(), results)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which migrations are applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, func(ctx context.Context, env *migrateEnv) error {
				statuses, err := env.provider.Status(ctx)
				if err != nil {
					return fmt.Errorf("failed to read migration status: %w", err)
				}
				printStatuses(cmd.OutOrStdout(), statuses)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import",
		Short: "Copy the schedules written in the notes into the database",
		Long:  "Apply pending migrations, then copy every schedule found in the vault's notes into the database in one transaction. Schedules already in the database are replaced.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, func(ctx context.Context, env *migrateEnv) error {
				n, err := importSchedules(ctx, env)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d schedules.\n", n)
				return nil
			})
		},
	})
	return cmd
}

// importSchedules loads the vault and saves its inline schedules to the
// database. Nothing is saved if any schedule is rejected.
func importSchedules(ctx context.Context, env *migrateEnv) (int, error) {
	if _, err := env.provider.Up(ctx); err != nil {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}

	loader := vault.NewLoader(env.config.Vault.Path, vault.OptionsFromConfig(env.config.Vault), env.logger)
	col, err := loader.Load(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load vault: %w", err)
	}

	schedules := col.Schedules()
	st := newSQLStore(env.config.Storage.Driver, env.db, env.logger)
	if err := st.SaveMany(ctx, schedules); err != nil {
		return 0, fmt.Errorf("failed to import schedules: %w", err)
	}
	env.logger.Info("Imported schedules",
		"count", len(schedules),
		"driver", env.config.Storage.Driver)
	return len(schedules), nil
}

func withDatabase(cmd *cobra.Command, fn func(ctx context.Context, env *migrateEnv) error) error {
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
	db, provider, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Error closing database connection", "error", err)
		}
	}()

	logger.Debug("Executing migration command", "command", cmd.Name(), "driver", cfg.Storage.Driver)
	return fn(ctx, &migrateEnv{config: cfg, logger: logger, db: db, provider: provider})
}

func printResults(w io.Writer, results []*goose.MigrationResult) {
	if len(results) == 0 {
		fmt.Fprintln(w, "No pending migrations.")
		return
	}
	for _, r := range results {
		fmt.Fprintf(w, "OK   %05d  %-40s  %s\n", r.Source.Version, r.Source.Path, r.Duration.Round(1e6))
	}
}

func printStatuses(w io.Writer, statuses []*goose.MigrationStatus) {
	for _, s := range statuses {
		applied := "pending"
		if s.State == goose.StateApplied {
			applied = "applied " + s.AppliedAt.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%05d  %-40s  %s\n", s.Source.Version, s.Source.Path, applied)
	}
}

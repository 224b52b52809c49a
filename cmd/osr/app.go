package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/config"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/domain/srs"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/events"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/postgres"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/platform/sqlite"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/review"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/store"
	"github.com/st3v3nmw/obsidian-spaced-repetition-sub001/internal/vault"
)

// selfWriteWindow is how long after its own write the watcher ignores a note.
const selfWriteWindow = 2 * time.Second

// errNoDatabase is returned for database commands under the vault driver.
var errNoDatabase = errors.New("storage driver vault has no database")

// application holds the shared dependencies and ensures proper cleanup on
// shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil under the vault driver.
	db         *sql.DB
	store      store.ScheduleStore
	vaultStore *vault.Store

	engine  srs.Service
	emitter *events.InMemoryEventEmitter
	service *review.Service
	watcher *vault.Watcher
}

// newApplication wires every component and loads the vault once.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	if err = app.setupStore(ctx); err != nil {
		app.cleanup()
		return nil, err
	}

	app.engine, err = srs.NewServiceWithSettings(cfg.SchedulingSettings())
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create SRS service: %w", err)
	}

	opts, err := review.OptionsFromConfig(cfg)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("invalid review configuration: %w", err)
	}

	app.emitter = events.NewInMemoryEventEmitter(logger)
	app.emitter.RegisterHandler(events.NewLogHandler(logger))

	loader := vault.NewLoader(cfg.Vault.Path, vault.OptionsFromConfig(cfg.Vault), logger)
	app.service = review.NewService(loader, app.store, app.engine, opts, logger,
		review.WithEmitter(app.emitter))

	if err := app.service.Reload(ctx); err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to load vault: %w", err)
	}

	logger.Info("Application initialized successfully",
		"storage_driver", cfg.Storage.Driver,
		"mode", cfg.Review.Mode)
	return app, nil
}

// setupStore opens the schedule store named by the storage driver. SQL
// stores are migrated to the latest version first.
func (app *application) setupStore(ctx context.Context) error {
	cfg := app.config
	if cfg.Storage.Driver == "vault" {
		app.vaultStore = vault.NewStore(cfg.Vault.Path, cfg.Scheduling.BaseEase, app.logger)
		app.store = app.vaultStore
		return nil
	}

	db, provider, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	app.db = db

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	if len(results) > 0 {
		app.logger.Info("Applied migrations", "count", len(results))
	}

	app.store = newSQLStore(cfg.Storage.Driver, db, app.logger)
	return nil
}

// newSQLStore returns the schedule store for a SQL storage driver.
func newSQLStore(driver string, db *sql.DB, logger *slog.Logger) store.BatchScheduleStore {
	if driver == "postgres" {
		return postgres.NewPostgresScheduleStore(db, logger)
	}
	return sqlite.NewScheduleStore(db, logger)
}

// openDatabase connects to the configured SQL database and returns it with
// a migration provider for its dialect.
func openDatabase(ctx context.Context, cfg *config.Config) (*sql.DB, *goose.Provider, error) {
	var (
		db          *sql.DB
		err         error
		newProvider func(*sql.DB) (*goose.Provider, error)
	)
	switch cfg.Storage.Driver {
	case "postgres":
		db, err = postgres.Open(ctx, cfg.Storage.URL)
		newProvider = postgres.NewMigrationProvider
	case "sqlite":
		db, err = sqlite.Open(ctx, cfg.Storage.URL)
		newProvider = sqlite.NewMigrationProvider
	default:
		return nil, nil, errNoDatabase
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	provider, err := newProvider(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	return db, provider, nil
}

// startWatcher reloads the service whenever a note changes. Writes made by
// the vault store itself are ignored.
func (app *application) startWatcher(ctx context.Context) error {
	reload := func(ctx context.Context) {
		if err := app.service.Reload(ctx); err != nil {
			app.logger.Error("Failed to reload vault", "error", err)
		}
	}

	w, err := vault.NewWatcher(app.config.Vault.Path, app.config.Vault.WatchDebounce, reload, app.logger)
	if err != nil {
		return fmt.Errorf("failed to create vault watcher: %w", err)
	}
	if app.vaultStore != nil {
		w.Ignore = func(path string) bool {
			return app.vaultStore.WroteRecently(path, selfWriteWindow)
		}
	}
	if err := w.Start(ctx); err != nil {
		return fmt.Errorf("failed to start vault watcher: %w", err)
	}
	app.watcher = w
	app.logger.Info("Watching vault for changes", "debounce", app.config.Vault.WatchDebounce)
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.watcher != nil {
		if err := app.watcher.Stop(); err != nil {
			app.logger.Error("Error stopping vault watcher", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Debug("Application shutdown completed")
}

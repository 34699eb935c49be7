package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/genesisr5/inventario/config"
	"github.com/genesisr5/inventario/internal/adapter/cli"
	"github.com/genesisr5/inventario/internal/adapter/storage"
	"github.com/genesisr5/inventario/internal/core/port"
	"github.com/genesisr5/inventario/internal/core/service"
)

type App struct {
	ctx   context.Context
	cfg   config.Config
	store *service.Store
	snap  port.SnapshotWriter
	shell *cli.Shell
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initStore()
	app.initShell()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

// initStore loads the inventory from the backing file. Load faults
// degrade to an empty mapping; they never stop the application.
func (app *App) initStore() {
	const op = "App.initStore"
	log := slog.With("op", op)

	repo := storage.NewFileRepository(app.cfg.InventoryFile)
	store := service.New(repo)

	if err := store.Load(app.ctx); err != nil {
		log.Error("failed to load inventory, starting empty", "err", err)
	}

	if app.cfg.SeedDefaults && store.Len() == 0 {
		if err := store.SeedDefaults(app.ctx); err != nil {
			log.Error("failed to seed default products", "err", err)
		}
	}

	app.store = store
	if app.cfg.SnapshotFile != "" {
		app.snap = storage.NewSnapshotWriter(app.cfg.SnapshotFile)
	}
}

func (app *App) initShell() {
	app.shell = cli.New(app.store, os.Stdin, os.Stdout)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.shell.Run(app.ctx, stopFn)

	slog.Info("application is running",
		"inventoryFile", app.cfg.InventoryFile,
		"nProducts", app.store.Len(),
	)
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	if app.snap != nil {
		ps, err := app.store.ListProducts(ctx)
		if err == nil {
			err = app.snap.WriteSnapshot(ctx, ps)
		}
		if err != nil {
			slog.Error("failed to write inventory snapshot", "err", err)
		}
	}

	slog.Info("application is closed")
}

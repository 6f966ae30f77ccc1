// cmd/server/main.go
// This is the entry point for the Ticklist API server.
// The cmd/ folder holds executable binaries; internal/ holds the packages they are
// built from, which other modules cannot import.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/trentd187/ticklist/internal/config"
	"github.com/trentd187/ticklist/internal/database"
	"github.com/trentd187/ticklist/internal/models"
	"github.com/trentd187/ticklist/internal/router"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err.Error())
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables (and optionally a .env file).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the shared connection pool. Every handler borrows connections from it;
	// it lives until the process exits.
	connectCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	db, err := database.Connect(connectCtx, cfg.DatabaseURL, database.PoolOptions{
		MaxOpenConns:    cfg.MaxOpenConns,
		MaxIdleConns:    cfg.MaxIdleConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	})
	cancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("closing database", "error", err.Error())
		}
	}()

	// The schema must be in place before the first request is served.
	if err := database.RunMigrations(cfg.MigrationsPath, cfg.DatabaseURL); err != nil {
		return err
	}
	slog.Info("database schema ready", "migrations", cfg.MigrationsPath)

	app := router.New(router.Resources{
		Crags:   database.NewTable[models.Crag](db),
		Routes:  database.NewTable[models.Route](db),
		Ascents: database.NewTable[models.Ascent](db),
	}, router.Options{RequestLogging: true})

	// Listen in the background so we can wait for a shutdown signal here.
	listenErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.Port, "env", cfg.Env)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
		slog.Info("shutting down")
		return app.ShutdownWithTimeout(10 * time.Second)
	}
}

// setupLogging installs the process-wide slog logger: readable text locally,
// JSON everywhere else so log collectors can parse it.
func setupLogging(cfg *config.Config) {
	var handler slog.Handler
	if cfg.IsDevelopment() {
		handler = slog.NewTextHandler(os.Stdout, nil)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	slog.SetDefault(slog.New(handler))
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payroll-backend/internal/auth"
	"payroll-backend/internal/config"
	"payroll-backend/internal/database"
	"payroll-backend/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := run(); err != nil {
		slog.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Load()

	if cfg.AutoMigrate {
		if err := database.MigrateUp(cfg.MigrationURL()); err != nil {
			return err
		}
	}

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Error("closing database", "err", err)
		}
	}()

	deps := server.NewDeps(cfg, db)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = auth.EnsureAdmin(ctx, deps.Users, cfg.AdminUsername, cfg.AdminPassword)
	cancel()
	if err != nil {
		return err
	}

	app := server.New(cfg, deps)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "port", cfg.HTTPPort)
		errCh <- app.Listen(":" + cfg.HTTPPort)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("shutting down", "signal", sig.String())
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}

// Package main runs the ScoreLab API server: a credit score simulator that
// keeps one profile per session, scores it, and projects "what if" actions.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/scorelab-api/internal/config"
	"github.com/phrazzld/scorelab-api/internal/platform/logger"
	"github.com/phrazzld/scorelab-api/internal/platform/postgres"
)

func main() {
	migrate := flag.String("migrate", "", "run a migration command (up, down, status, version, reset) and exit")
	flag.Parse()

	if err := run(*migrate); err != nil {
		fmt.Fprintf(os.Stderr, "scorelab-api: %v\n", err)
		os.Exit(1)
	}
}

// run loads configuration, wires the application and serves until SIGINT or
// SIGTERM. When migrateCmd is non-empty it only runs that migration command.
func run(migrateCmd string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	l.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.Bool("llm_enabled", cfg.LLM.GeminiAPIKey != ""))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if migrateCmd != "" {
		if cfg.Database.Driver != config.DriverPostgres {
			return fmt.Errorf("migrations require the postgres driver, got %q", cfg.Database.Driver)
		}
		db, err := setupAppDatabase(ctx, cfg.Database, l)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return postgres.Migrate(ctx, db, migrateCmd, l)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return err
	}
	return app.Run(ctx)
}

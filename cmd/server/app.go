package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scorelab-api/internal/config"
	"github.com/phrazzld/scorelab-api/internal/domain/credit"
	"github.com/phrazzld/scorelab-api/internal/events"
	"github.com/phrazzld/scorelab-api/internal/generation"
	"github.com/phrazzld/scorelab-api/internal/platform/gemini"
	"github.com/phrazzld/scorelab-api/internal/platform/memory"
	"github.com/phrazzld/scorelab-api/internal/platform/postgres"
	"github.com/phrazzld/scorelab-api/internal/profile"
	"github.com/phrazzld/scorelab-api/internal/service"
	"github.com/phrazzld/scorelab-api/internal/service/auth"
	"github.com/phrazzld/scorelab-api/internal/store"
)

// application holds the shared dependencies so they can be wired once and
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	profileStore store.ProfileStore
	historyStore store.ScoreHistoryStore

	jwtService     auth.JWTService
	profileService service.ProfileService
	explainer      generation.Explainer
	eventEmitter   *events.InMemoryEventEmitter
}

// newApplication wires stores, services and the explainer for cfg. With the
// postgres driver it opens the database and applies migrations when
// auto_migrate is set.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	if err := app.setupStores(ctx); err != nil {
		return nil, err
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	app.eventEmitter = events.NewInMemoryEventEmitter(logger)
	app.eventEmitter.RegisterHandler(service.NewScoreHistoryRecorder(app.historyStore, logger))

	scoring := credit.NewServiceWithParams(credit.NewParams(credit.ParamsConfig{
		MaxBalance:        cfg.Scoring.MaxBalance,
		MaxCreditLimit:    cfg.Scoring.MaxCreditLimit,
		MaxMonthlyPayment: cfg.Scoring.MaxMonthlyPayment,
		MaxPaymentAmount:  cfg.Scoring.MaxPaymentAmount,
		MaxAccountAge:     cfg.Scoring.MaxAccountAgeMonths,
	}))

	app.profileService, err = service.NewProfileService(
		app.profileStore,
		app.historyStore,
		app.eventEmitter,
		logger,
		service.WithCacheSize(cfg.Session.CacheSize),
		service.WithControllerOptions(
			profile.WithScoring(scoring),
			profile.WithBlockInvalidSimulations(cfg.Scoring.BlockInvalidSimulations),
		),
	)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create profile service: %w", err)
	}

	app.explainer, err = newExplainer(ctx, cfg.LLM, logger)
	if err != nil {
		app.cleanup()
		return nil, err
	}

	logger.Info("application initialized successfully")
	return app, nil
}

func (app *application) setupStores(ctx context.Context) error {
	switch app.config.Database.Driver {
	case config.DriverMemory:
		profiles := memory.NewProfileStore(app.logger)
		app.profileStore = profiles
		app.historyStore = memory.NewScoreHistoryStore(profiles)
		app.logger.Warn("using in-memory profile store; data is lost on restart")
		return nil

	case config.DriverPostgres:
		db, err := setupAppDatabase(ctx, app.config.Database, app.logger)
		if err != nil {
			return err
		}
		app.db = db

		if app.config.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, db, "up", app.logger); err != nil {
				app.cleanup()
				return fmt.Errorf("failed to apply migrations: %w", err)
			}
		}

		app.profileStore = postgres.NewPostgresProfileStore(db, app.logger)
		app.historyStore = postgres.NewPostgresScoreHistoryStore(db, app.logger)
		return nil

	default:
		return fmt.Errorf("unsupported database driver %q", app.config.Database.Driver)
	}
}

// newExplainer returns the template explainer, fronted by Gemini when an API
// key is configured.
func newExplainer(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Explainer, error) {
	tmpl, err := generation.NewTemplateExplainer("")
	if err != nil {
		return nil, fmt.Errorf("failed to create template explainer: %w", err)
	}
	if cfg.GeminiAPIKey == "" {
		logger.Info("no Gemini API key configured, using template explanations")
		return tmpl, nil
	}

	llm, err := gemini.NewGeminiExplainer(ctx, logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini explainer: %w", err)
	}
	logger.Info("Gemini explainer initialized", slog.String("model", cfg.ModelName))
	return generation.NewFallbackExplainer(llm, tmpl, logger), nil
}

// Run serves HTTP until ctx is cancelled, then releases resources.
func (app *application) Run(ctx context.Context) error {
	defer app.cleanup()

	if err := app.startHTTPServer(ctx, app.setupRouter()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
		app.db = nil
	}
	app.logger.Info("application shutdown completed")
}

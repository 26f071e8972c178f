package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/repeatry/leitner-api/internal/config"
	"github.com/repeatry/leitner-api/internal/generation"
	"github.com/repeatry/leitner-api/internal/platform/gemini"
	"github.com/repeatry/leitner-api/internal/platform/postgres"
	"github.com/repeatry/leitner-api/internal/service/auth"
	"github.com/repeatry/leitner-api/internal/service/holiday"
	"github.com/repeatry/leitner-api/internal/service/progress"
	"github.com/repeatry/leitner-api/internal/service/review"
	"github.com/repeatry/leitner-api/internal/service/schedule"
	"github.com/repeatry/leitner-api/internal/store"
	"github.com/repeatry/leitner-api/internal/task"
)

// application holds the shared application dependencies so wiring happens
// in one place and cleanup can release them in order on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore    store.UserStore
	cardStore    store.CardStore
	reviewStore  store.ReviewStore
	holidayStore store.HolidayStore

	jwtService      auth.JWTService
	passwordHasher  *auth.BcryptHasher
	holidayTracker  holiday.Tracker
	scheduleService schedule.Service
	reviewService   review.Service
	progressService progress.Service

	generator   generation.Generator
	taskFactory *task.CardGenerationTaskFactory
	taskRunner  *task.Runner
}

// newApplication connects to the database and wires every store, service
// and background component the server needs.
func newApplication(cfg *config.Config) (*application, error) {
	log := slog.Default()

	db, err := setupDatabase(cfg, log)
	if err != nil {
		return nil, err
	}

	userStore := postgres.NewPostgresUserStore(db, log)
	cardStore := postgres.NewPostgresCardStore(db, log)
	reviewStore := postgres.NewPostgresReviewStore(db, log)
	holidayStore := postgres.NewPostgresHolidayStore(db, log)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	holidayTracker := holiday.NewTracker(db, holidayStore, log)
	scheduleService := schedule.NewService(cardStore, reviewStore, holidayTracker, nil, log)
	reviewService := review.NewService(db, cardStore, reviewStore, log)
	progressService := progress.NewService(cardStore, reviewStore, holidayTracker, log)

	generator, err := setupGenerator(cfg, log)
	if err != nil {
		return nil, err
	}

	taskFactory, err := task.NewCardGenerationTaskFactory(db, cardStore, generator, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create task factory: %w", err)
	}

	taskStore := postgres.NewTaskStore(db, taskFactory, log)
	taskRunner := task.NewRunner(taskStore, runnerConfig(cfg.Task), log)

	return &application{
		config:          cfg,
		logger:          log,
		db:              db,
		userStore:       userStore,
		cardStore:       cardStore,
		reviewStore:     reviewStore,
		holidayStore:    holidayStore,
		jwtService:      jwtService,
		passwordHasher:  auth.NewBcryptHasher(bcrypt.DefaultCost),
		holidayTracker:  holidayTracker,
		scheduleService: scheduleService,
		reviewService:   reviewService,
		progressService: progressService,
		generator:       generator,
		taskFactory:     taskFactory,
		taskRunner:      taskRunner,
	}, nil
}

// setupGenerator picks the card generator implementation. Without an API
// key the server still runs and the upload endpoint produces no cards.
func setupGenerator(cfg *config.Config, log *slog.Logger) (generation.Generator, error) {
	if cfg.LLM.GeminiAPIKey == "" {
		log.Warn("No Gemini API key configured, card generation is disabled")
		return generation.Noop{}, nil
	}

	gen, err := gemini.NewGenerator(context.Background(), log, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini generator: %w", err)
	}
	return gen, nil
}

// runnerConfig applies configured overrides on top of the runner defaults.
func runnerConfig(cfg config.TaskConfig) task.RunnerConfig {
	rc := task.DefaultRunnerConfig()
	if cfg.WorkerCount > 0 {
		rc.WorkerCount = cfg.WorkerCount
	}
	if cfg.QueueSize > 0 {
		rc.QueueSize = cfg.QueueSize
	}
	return rc
}

// cleanup releases application resources. Called after the HTTP server has
// stopped accepting requests.
func (app *application) cleanup() {
	app.taskRunner.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("Failed to close database connection", "error", err)
	}
}

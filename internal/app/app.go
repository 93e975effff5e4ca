package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"NewsRadar/internal/config"
	"NewsRadar/internal/feeds"
	"NewsRadar/internal/infrastructure/embed"
	"NewsRadar/internal/infrastructure/llm"
	"NewsRadar/internal/infrastructure/lookup"
	"NewsRadar/internal/infrastructure/rss"
	"NewsRadar/internal/infrastructure/scheduler"
	"NewsRadar/internal/infrastructure/storage"
	"NewsRadar/internal/infrastructure/telegram"
	"NewsRadar/internal/logging"
	"NewsRadar/internal/ports"
	"NewsRadar/internal/profile"
	"NewsRadar/internal/rank"
	"NewsRadar/internal/usecase"
)

// Application wires configuration to the pipeline and its lifecycle.
type Application struct {
	cfg      config.Config
	logger   *slog.Logger
	pipeline *usecase.Pipeline
	db       *sql.DB
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := feeds.NewRegistry(cfg.Feeds.SubjectTemplates, cfg.Feeds.General)

	nameLookup := lookup.NewClient(cfg.Lookup.Endpoint, nil)
	profiles := profile.NewResolver(nameLookup, profile.NewCache(profile.DefaultCacheSize),
		baseLogger.With("component", "profile"))

	fetcher := rss.NewFetcher(nil, baseLogger.With("component", "fetcher"))

	var semantic rank.SimilaritySource
	if cfg.Embedding.Endpoint != "" {
		semantic = embed.NewClient(cfg.Embedding.Endpoint, cfg.Embedding.APIKey, cfg.Embedding.Reference)
	}

	var repository ports.DigestRepository
	var db *sql.DB
	if cfg.Database.DSN != "" {
		opened, err := sql.Open("postgres", cfg.Database.DSN)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db = opened
		repository = storage.NewPostgresRepository(db)
	}

	var summarizer ports.Summarizer
	if cfg.LLM.APIKey != "" {
		summarizer = llm.NewClient(cfg.LLM)
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Feeds:            registry,
		Profiles:         profiles,
		Source:           fetcher,
		Semantic:         semantic,
		Repository:       repository,
		Summarizer:       summarizer,
		Notifier:         notifier,
		Logger:           baseLogger.With("component", "pipeline"),
		Window:           cfg.Pipeline.Window(),
		TotalLimit:       cfg.Pipeline.TotalLimit,
		QuotaPerCategory: cfg.Pipeline.QuotaPerCategory,
	})

	return &Application{cfg: cfg, logger: baseLogger, pipeline: pipeline, db: db}, nil
}

// Run executes the digest flow once, or keeps it on the cron schedule when
// the scheduler is enabled.
func (a *Application) Run(ctx context.Context) error {
	if a.pipeline == nil {
		return nil
	}
	defer a.close()

	if !a.cfg.Scheduler.Enabled {
		a.pipeline.ProcessAll(ctx, a.cfg.Subjects)
		return nil
	}

	driver := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Location())
	runner := usecase.NewScheduler(driver, a.pipeline, a.cfg.Subjects)

	if err := runner.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started", "cron", a.cfg.Scheduler.CronExpression)

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return runner.Stop(stopCtx)
}

func (a *Application) close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("close database", "error", err)
		}
	}
}

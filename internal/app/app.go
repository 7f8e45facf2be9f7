package app

import (
	"context"
	"log/slog"

	"github.com/Nevutel/longevityscraper/internal/config"
	"github.com/Nevutel/longevityscraper/internal/enrich"
	"github.com/Nevutel/longevityscraper/internal/fetch"
	"github.com/Nevutel/longevityscraper/internal/logging"
	"github.com/Nevutel/longevityscraper/internal/ports"
	"github.com/Nevutel/longevityscraper/internal/relevance"
	"github.com/Nevutel/longevityscraper/internal/run"
	"github.com/Nevutel/longevityscraper/internal/store"
	"github.com/Nevutel/longevityscraper/internal/summarize"
	"github.com/Nevutel/longevityscraper/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	runner    *run.Runner
	scheduler *usecase.Scheduler
	logger    *slog.Logger
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	scraping := cfg.Scraping

	registry := fetch.NewRegistry()
	registry.Register(fetch.NewRSSFetcher(nil, scraping.UserAgent, scraping.Timeout(),
		scraping.MaxArticlesPerSource, baseLogger.With("component", "fetch.rss")))
	registry.Register(fetch.NewScrapeFetcher(nil, scraping.UserAgent, scraping.Timeout(),
		scraping.MaxArticlesPerSource, baseLogger.With("component", "fetch.scrape")))
	registry.Register(fetch.NewSearchFetcher(nil, scraping.UserAgent, scraping.Timeout(),
		scraping.MaxArticlesPerSource, baseLogger.With("component", "fetch.search")))

	source := fetch.NewStrategySource(registry, cfg.Sources, scraping.Delay(),
		baseLogger.With("component", "source"))

	filter := relevance.NewFilter(cfg.Filter, cfg.Keywords,
		baseLogger.With("component", "filter"))

	var enricher ports.Enricher
	if scraping.ExtractDetails() {
		enricher = enrich.NewExtractor(nil, scraping.UserAgent, scraping.Timeout(),
			scraping.Delay(), baseLogger.With("component", "enrich"))
	}

	engines := []summarize.Engine{
		summarize.NewTFIDFEngine(),
		summarize.NewKeywordEngine(),
		summarize.NewLeadEngine(),
	}
	if cfg.OpenAI.APIKey != "" {
		engines = append([]summarize.Engine{summarize.NewOpenAIEngine(cfg.OpenAI)}, engines...)
	}
	chain := summarize.NewChain(baseLogger.With("component", "summarize"), engines...)

	writer := store.NewCSVWriter(cfg.Output.File, cfg.Output.BackupFile,
		baseLogger.With("component", "store"))

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     source,
		Filter:     filter,
		Enricher:   enricher,
		Summarizer: chain,
		Writer:     writer,
		Logger:     baseLogger.With("component", "pipeline"),
	})

	runner := run.NewRunner(pipeline.Run, baseLogger.With("component", "runner"))

	scheduler, err := usecase.NewScheduler(cfg.Scheduler.CronExpression,
		cfg.Scheduler.Location(), runner, baseLogger.With("component", "scheduler"))
	if err != nil {
		return nil, err
	}

	return &Application{cfg: cfg, runner: runner, scheduler: scheduler, logger: baseLogger}, nil
}

// RunOnce performs a single pipeline execution.
func (a *Application) RunOnce(ctx context.Context) (int, error) {
	return a.runner.TryRun(ctx)
}

// Status reports the host-owned run status record.
func (a *Application) Status() run.Status {
	return a.runner.Status()
}

// Serve starts the daily schedule and blocks until the context is canceled.
func (a *Application) Serve(ctx context.Context) error {
	a.scheduler.Start()
	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Scraping.Timeout())
	defer cancel()
	return a.scheduler.Stop(stopCtx)
}

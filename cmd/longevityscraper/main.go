package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Nevutel/longevityscraper/internal/app"
	"github.com/Nevutel/longevityscraper/internal/config"
	"github.com/Nevutel/longevityscraper/internal/logging"
)

func main() {
	once := flag.Bool("once", false, "run one scrape and exit instead of serving the daily schedule")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level, cfg.Logging.Format)

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *once {
		count, err := application.RunOnce(ctx)
		if err != nil {
			logger.Error("scrape failed", "error", err)
			os.Exit(1)
		}
		logger.Info("scrape finished", "articles", count)
		return
	}

	if err := application.Serve(ctx); err != nil && ctx.Err() == nil {
		logger.Error("application stopped", "error", err)
		os.Exit(1)
	}
}

package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/Nevutel/longevityscraper/internal/run"
)

// Scheduler registers a recurring pipeline run at a fixed wall-clock time.
// Scheduled triggers go through the runner so they share the single-flight
// guard with manual invocations.
type Scheduler struct {
	cron   *cron.Cron
	runner *run.Runner
	logger *slog.Logger
}

// NewScheduler builds a cron-backed scheduler for the given expression.
func NewScheduler(spec string, location *time.Location, runner *run.Runner, logger *slog.Logger) (*Scheduler, error) {
	c := cron.New(cron.WithLocation(location))

	s := &Scheduler{cron: c, runner: runner, logger: logger}
	if _, err := c.AddFunc(spec, s.trigger); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins the cron loop in its own goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.info("scheduler started")
}

// Stop halts the cron loop and waits for an in-flight trigger to return.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) trigger() {
	count, err := s.runner.TryRun(context.Background())
	switch {
	case errors.Is(err, run.ErrAlreadyRunning):
		s.warn("scheduled run skipped, previous run still in progress")
	case err != nil:
		s.error("scheduled run failed", "error", err)
	default:
		s.info("scheduled run finished", "articles", count)
	}
}

func (s *Scheduler) info(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Scheduler) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *Scheduler) error(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Error(msg, args...)
	}
}

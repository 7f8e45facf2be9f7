package run

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrAlreadyRunning signals that a trigger arrived while a pipeline run was
// in progress. The second trigger is rejected, never queued: the pipeline is
// not reentrant-safe.
var ErrAlreadyRunning = errors.New("scrape already in progress")

// Status is the host-owned view of the last pipeline invocation. The pipeline
// itself never touches it; the runner updates it around each run.
type Status struct {
	Running      bool
	LastRun      time.Time
	ArticleCount int
	LastError    string
}

// Job is a single pipeline invocation returning the accepted-record count.
type Job func(ctx context.Context) (int, error)

// Runner guarantees at most one concurrent pipeline run and maintains the
// status record.
type Runner struct {
	mu     sync.Mutex
	status Status
	job    Job
	logger *slog.Logger
}

// NewRunner wires the pipeline invocation behind the single-flight guard.
func NewRunner(job Job, logger *slog.Logger) *Runner {
	return &Runner{job: job, logger: logger}
}

// TryRun executes the job unless one is already running, in which case it
// returns ErrAlreadyRunning immediately.
func (r *Runner) TryRun(ctx context.Context) (int, error) {
	r.mu.Lock()
	if r.status.Running {
		r.mu.Unlock()
		return 0, ErrAlreadyRunning
	}
	r.status.Running = true
	r.status.LastError = ""
	r.mu.Unlock()

	r.info("pipeline run started")
	count, err := r.job(ctx)

	r.mu.Lock()
	r.status.Running = false
	if err != nil {
		r.status.LastError = err.Error()
	} else {
		r.status.LastRun = time.Now()
		r.status.ArticleCount = count
	}
	r.mu.Unlock()

	if err != nil {
		r.error("pipeline run failed", "error", err)
		return 0, err
	}

	r.info("pipeline run finished", "articles", count)
	return count, nil
}

// Status returns a snapshot of the current run state.
func (r *Runner) Status() Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

func (r *Runner) info(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Info(msg, args...)
	}
}

func (r *Runner) error(msg string, args ...any) {
	if r.logger != nil {
		r.logger.Error(msg, args...)
	}
}

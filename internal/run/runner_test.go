package run

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestTryRunRejectsConcurrentTrigger(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	started := make(chan struct{}, 2)

	runner := NewRunner(func(ctx context.Context) (int, error) {
		started <- struct{}{}
		<-release
		return 7, nil
	}, nil)

	type result struct {
		count int
		err   error
	}
	done := make(chan result, 1)
	go func() {
		count, err := runner.TryRun(context.Background())
		done <- result{count, err}
	}()

	<-started

	if _, err := runner.TryRun(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("second trigger: got %v, want ErrAlreadyRunning", err)
	}
	if !runner.Status().Running {
		t.Fatal("status should report running while the job is in flight")
	}

	close(release)
	first := <-done
	if first.err != nil || first.count != 7 {
		t.Fatalf("first run: count=%d err=%v", first.count, first.err)
	}

	status := runner.Status()
	if status.Running {
		t.Fatal("status should clear the running flag after completion")
	}
	if status.ArticleCount != 7 {
		t.Fatalf("article count not recorded: %d", status.ArticleCount)
	}
	if status.LastRun.IsZero() {
		t.Fatal("last run timestamp not recorded")
	}

	// The guard must reopen after the first run finished.
	if _, err := runner.TryRun(context.Background()); err != nil {
		t.Fatalf("rerun after completion failed: %v", err)
	}
}

func TestTryRunRecordsFailure(t *testing.T) {
	t.Parallel()

	runner := NewRunner(func(ctx context.Context) (int, error) {
		return 0, fmt.Errorf("write primary output: disk full")
	}, nil)

	if _, err := runner.TryRun(context.Background()); err == nil {
		t.Fatal("expected job error to propagate")
	}

	status := runner.Status()
	if status.Running {
		t.Fatal("running flag stuck after failure")
	}
	if status.LastError == "" {
		t.Fatal("failure not recorded in status")
	}
	if !status.LastRun.IsZero() {
		t.Fatal("failed run must not update the last successful run time")
	}

	runner2 := NewRunner(func(ctx context.Context) (int, error) { return 3, nil }, nil)
	if _, err := runner2.TryRun(context.Background()); err != nil {
		t.Fatalf("clean run failed: %v", err)
	}
	if runner2.Status().LastError != "" {
		t.Fatalf("stale error: %q", runner2.Status().LastError)
	}
}

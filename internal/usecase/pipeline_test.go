package usecase

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/Nevutel/longevityscraper/internal/domain"
)

type stubSource struct {
	articles []domain.Article
}

func (s stubSource) FetchAll(context.Context) []domain.Article { return s.articles }

type stubFilter struct{}

func (stubFilter) Apply(candidates []domain.Article) []domain.ScoredArticle {
	var accepted []domain.ScoredArticle
	for _, c := range candidates {
		if c.URL == "" {
			continue
		}
		accepted = append(accepted, domain.ScoredArticle{Article: c, Score: 3})
	}
	return accepted
}

type stubSummarizer struct{}

func (stubSummarizer) Summarize(_ context.Context, text string) string {
	return "summary: " + text
}

type stubEnricher struct{}

func (stubEnricher) Enrich(_ context.Context, a domain.ScoredArticle) domain.ScoredArticle {
	a.Authors = "A. Researcher"
	return a
}

type captureWriter struct {
	persisted [][]domain.ScoredArticle
	err       error
}

func (w *captureWriter) Persist(articles []domain.ScoredArticle) error {
	w.persisted = append(w.persisted, articles)
	return w.err
}

func sampleCandidates() []domain.Article {
	return []domain.Article{
		{
			Title:       "Senolytics update",
			URL:         "https://example.org/a",
			Summary:     "long body text",
			PublishedAt: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		},
		{Title: "malformed", URL: ""},
	}
}

func TestPipelineRun(t *testing.T) {
	t.Parallel()

	writer := &captureWriter{}
	pipeline := NewPipeline(PipelineDeps{
		Source:     stubSource{articles: sampleCandidates()},
		Filter:     stubFilter{},
		Enricher:   stubEnricher{},
		Summarizer: stubSummarizer{},
		Writer:     writer,
	})

	count, err := pipeline.Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 accepted record, got %d", count)
	}

	if len(writer.persisted) != 1 {
		t.Fatalf("expected one persist call, got %d", len(writer.persisted))
	}
	record := writer.persisted[0][0]
	if record.Authors != "A. Researcher" {
		t.Fatalf("enrichment not applied: %+v", record)
	}
	if !strings.HasPrefix(record.Summary, "summary: ") {
		t.Fatalf("summarization not applied: %q", record.Summary)
	}
}

func TestPipelineSkipsSummarizingEmptyText(t *testing.T) {
	t.Parallel()

	writer := &captureWriter{}
	pipeline := NewPipeline(PipelineDeps{
		Source:     stubSource{articles: []domain.Article{{Title: "No body", URL: "https://example.org/x"}}},
		Filter:     stubFilter{},
		Summarizer: stubSummarizer{},
		Writer:     writer,
	})

	if _, err := pipeline.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := writer.persisted[0][0].Summary; got != "" {
		t.Fatalf("empty summary should stay empty, got %q", got)
	}
}

func TestPipelinePropagatesPersistenceFailure(t *testing.T) {
	t.Parallel()

	writer := &captureWriter{err: fmt.Errorf("disk full")}
	pipeline := NewPipeline(PipelineDeps{
		Source: stubSource{articles: sampleCandidates()},
		Filter: stubFilter{},
		Writer: writer,
	})

	if _, err := pipeline.Run(context.Background()); err == nil {
		t.Fatal("persistence failure must be fatal to the run")
	}
}

func TestPipelineRequiresWiring(t *testing.T) {
	t.Parallel()

	pipeline := NewPipeline(PipelineDeps{})
	if _, err := pipeline.Run(context.Background()); err == nil {
		t.Fatal("unwired pipeline should refuse to run")
	}
}

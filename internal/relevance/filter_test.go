package relevance

import (
	"testing"
	"time"

	"github.com/Nevutel/longevityscraper/internal/config"
	"github.com/Nevutel/longevityscraper/internal/domain"
)

func testKeywords() config.KeywordConfig {
	return config.KeywordConfig{
		Primary:        []string{"anti-aging", "longevity", "senescence"},
		Secondary:      []string{"telomere", "rapamycin", "autophagy"},
		Tertiary:       []string{"research", "study"},
		Irrelevant:     []string{"celebrity", "sports"},
		SourceAffinity: []string{"aging", "nature"},
	}
}

func testFilter(cfg config.FilterConfig) *Filter {
	return NewFilter(cfg, testKeywords(), nil)
}

func TestScoreComponents(t *testing.T) {
	t.Parallel()

	f := testFilter(config.FilterConfig{Policy: PolicyScore, Threshold: 2, DatePolicy: DatePolicyOff})

	tests := []struct {
		name    string
		article domain.Article
		want    int
	}{
		{
			name:    "primary in title",
			article: domain.Article{Title: "New longevity breakthrough"},
			want:    3,
		},
		{
			name:    "primary in summary",
			article: domain.Article{Summary: "longevity extension in mice"},
			want:    2,
		},
		{
			name:    "secondary both fields",
			article: domain.Article{Title: "Telomere length", Summary: "telomere dynamics"},
			want:    3,
		},
		{
			name:    "tertiary half point truncated",
			article: domain.Article{Summary: "a recent study"},
			want:    0,
		},
		{
			name:    "source affinity once per token",
			article: domain.Article{Source: "Nature Aging"},
			want:    2,
		},
		{
			name:    "irrelevant penalty floors at zero",
			article: domain.Article{Title: "Celebrity sports gossip", Summary: "sports roundup"},
			want:    0,
		},
		{
			name:    "penalty offsets primary",
			article: domain.Article{Title: "Celebrity embraces anti-aging fad"},
			want:    1, // +3 primary, -2 irrelevant
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := f.Score(tt.article)
			if got != tt.want {
				t.Fatalf("Score() = %d, want %d", got, tt.want)
			}
			if got < 0 {
				t.Fatalf("score went negative: %d", got)
			}
		})
	}
}

func TestScoreSummaryPrimaryWithTertiary(t *testing.T) {
	t.Parallel()

	f := testFilter(config.FilterConfig{Policy: PolicyScore, Threshold: 2, DatePolicy: DatePolicyOff})

	// +2 primary in summary, +0.5 tertiary in summary → 2.5 truncated to 2.
	article := domain.Article{Summary: "longevity study results"}
	if got := f.Score(article); got != 2 {
		t.Fatalf("Score() = %d, want 2", got)
	}
}

func TestApplyThreshold(t *testing.T) {
	t.Parallel()

	f := testFilter(config.FilterConfig{Policy: PolicyScore, Threshold: 2, DatePolicy: DatePolicyOff})

	candidates := []domain.Article{
		{Title: "Senescence reversal shown in trial", URL: "https://example.org/a"},
		{Title: "Telomere study", URL: "https://example.org/b"},
		{Title: "Weekend sports roundup", URL: "https://example.org/c"},
	}

	accepted := f.Apply(candidates)
	if len(accepted) != 2 {
		t.Fatalf("expected 2 accepted, got %d", len(accepted))
	}
	for _, a := range accepted {
		if a.Score < 2 {
			t.Fatalf("accepted article below threshold: %d", a.Score)
		}
	}
}

func TestApplyDropsEmptyURL(t *testing.T) {
	t.Parallel()

	f := testFilter(config.FilterConfig{Policy: PolicyScore, Threshold: 2, DatePolicy: DatePolicyOff})

	accepted := f.Apply([]domain.Article{{Title: "Longevity gains"}})
	if len(accepted) != 0 {
		t.Fatalf("expected malformed candidate to be dropped, got %d", len(accepted))
	}
}

func TestDateFilterFailsOpen(t *testing.T) {
	t.Parallel()

	f := testFilter(config.FilterConfig{
		Policy: PolicyScore, Threshold: 2,
		DatePolicy: DatePolicyYear, TargetYear: 2025,
	})

	candidates := []domain.Article{
		{Title: "Longevity news", URL: "https://example.org/a", PublishedRaw: "not a date"},
		{Title: "Longevity news", URL: "https://example.org/b"},
		{
			Title: "Longevity news", URL: "https://example.org/c",
			PublishedRaw: "2020-01-15", PublishedAt: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	accepted := f.Apply(candidates)
	if len(accepted) != 2 {
		t.Fatalf("expected 2 accepted (unparseable pass, wrong year rejected), got %d", len(accepted))
	}
	for _, a := range accepted {
		if a.URL == "https://example.org/c" {
			t.Fatal("article from wrong year was not rejected")
		}
	}
}

func TestDateFilterWindowPolicy(t *testing.T) {
	t.Parallel()

	f := testFilter(config.FilterConfig{
		Policy: PolicyScore, Threshold: 2,
		DatePolicy: DatePolicyWindow, LookbackDays: 7,
	})
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	f.now = func() time.Time { return now }

	candidates := []domain.Article{
		{Title: "Longevity news", URL: "https://example.org/fresh", PublishedAt: now.AddDate(0, 0, -3)},
		{Title: "Longevity news", URL: "https://example.org/stale", PublishedAt: now.AddDate(0, 0, -30)},
	}

	accepted := f.Apply(candidates)
	if len(accepted) != 1 || accepted[0].URL != "https://example.org/fresh" {
		t.Fatalf("window policy kept wrong set: %+v", accepted)
	}
}

func TestApplyOrdersByRecency(t *testing.T) {
	t.Parallel()

	f := testFilter(config.FilterConfig{Policy: PolicyScore, Threshold: 2, DatePolicy: DatePolicyOff})

	older := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	candidates := []domain.Article{
		{Title: "Longevity update", URL: "https://example.org/old", PublishedAt: older},
		{Title: "Longevity update", URL: "https://example.org/undated"},
		{Title: "Longevity update", URL: "https://example.org/new", PublishedAt: newer},
	}

	accepted := f.Apply(candidates)
	if len(accepted) != 3 {
		t.Fatalf("expected 3 accepted, got %d", len(accepted))
	}

	wantOrder := []string{
		"https://example.org/new",
		"https://example.org/old",
		"https://example.org/undated",
	}
	for i, want := range wantOrder {
		if accepted[i].URL != want {
			t.Fatalf("position %d: got %s, want %s", i, accepted[i].URL, want)
		}
	}
}

func TestRSSScenario(t *testing.T) {
	t.Parallel()

	// Three feed entries: two with a primary keyword in the title, one with
	// only an irrelevant keyword. Exactly two accepted, recency descending.
	f := testFilter(config.FilterConfig{Policy: PolicyScore, Threshold: 2, DatePolicy: DatePolicyOff})

	candidates := []domain.Article{
		{
			Title: "Senescence pathway mapped", URL: "https://example.org/1",
			PublishedAt: time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Title: "Celebrity diet trends", URL: "https://example.org/2",
			PublishedAt: time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			Title: "Anti-aging trial results", URL: "https://example.org/3",
			PublishedAt: time.Date(2025, 5, 3, 0, 0, 0, 0, time.UTC),
		},
	}

	accepted := f.Apply(candidates)
	if len(accepted) != 2 {
		t.Fatalf("expected exactly 2 accepted, got %d", len(accepted))
	}
	if accepted[0].URL != "https://example.org/3" || accepted[1].URL != "https://example.org/1" {
		t.Fatalf("unexpected order: %s, %s", accepted[0].URL, accepted[1].URL)
	}
}

func TestOffPolicyAcceptsEverything(t *testing.T) {
	t.Parallel()

	f := testFilter(config.FilterConfig{Policy: PolicyOff, Threshold: 2, DatePolicy: DatePolicyOff})

	candidates := []domain.Article{
		{Title: "Weekend sports roundup", URL: "https://example.org/sports"},
		{Title: "Longevity gains", URL: "https://example.org/longevity"},
	}

	accepted := f.Apply(candidates)
	if len(accepted) != 2 {
		t.Fatalf("off policy must accept every well-formed candidate, got %d", len(accepted))
	}
	for _, a := range accepted {
		if a.URL == "https://example.org/longevity" && a.Score < 2 {
			t.Fatalf("off policy should still record the score: %d", a.Score)
		}
	}
}

func TestOffPolicyStillDropsEmptyURL(t *testing.T) {
	t.Parallel()

	f := testFilter(config.FilterConfig{Policy: PolicyOff, DatePolicy: DatePolicyOff})
	if accepted := f.Apply([]domain.Article{{Title: "No link"}}); len(accepted) != 0 {
		t.Fatalf("malformed candidate must be dropped even with scoring off, got %d", len(accepted))
	}
}

func TestTitlePolicy(t *testing.T) {
	t.Parallel()

	f := testFilter(config.FilterConfig{Policy: PolicyTitle, Threshold: 2, DatePolicy: DatePolicyOff})

	candidates := []domain.Article{
		{Title: "Longevity in worms", URL: "https://example.org/hit"},
		{Title: "Telomere study", URL: "https://example.org/miss", Summary: "longevity everywhere"},
	}

	accepted := f.Apply(candidates)
	if len(accepted) != 1 || accepted[0].URL != "https://example.org/hit" {
		t.Fatalf("title policy accepted wrong set: %+v", accepted)
	}
	if accepted[0].Score < 2 {
		t.Fatalf("title-gated record must carry a threshold score, got %d", accepted[0].Score)
	}
}

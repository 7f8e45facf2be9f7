package relevance

import (
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Nevutel/longevityscraper/internal/config"
	"github.com/Nevutel/longevityscraper/internal/domain"
	"github.com/Nevutel/longevityscraper/internal/ports"
)

// Filter policies selectable via configuration.
const (
	PolicyScore = "score"
	PolicyTitle = "title"
	PolicyOff   = "off"

	DatePolicyYear   = "year"
	DatePolicyWindow = "window"
	DatePolicyOff    = "off"
)

// Filter scores and date-filters candidate records into the accepted subset.
// The date filter fails open: a record whose published date is missing or
// unparseable is never rejected on date grounds.
type Filter struct {
	cfg      config.FilterConfig
	keywords config.KeywordConfig
	now      func() time.Time
	logger   *slog.Logger
}

var _ ports.RelevanceFilter = (*Filter)(nil)

// NewFilter builds a filter from the injected policy and keyword tables.
func NewFilter(cfg config.FilterConfig, keywords config.KeywordConfig, logger *slog.Logger) *Filter {
	return &Filter{
		cfg:      cfg,
		keywords: keywords,
		now:      time.Now,
		logger:   logger,
	}
}

// Apply scans candidates in input order, then re-orders the accepted subset
// by published date descending. Records without a parsed date sort last.
func (f *Filter) Apply(candidates []domain.Article) []domain.ScoredArticle {
	accepted := make([]domain.ScoredArticle, 0, len(candidates))

	for _, candidate := range candidates {
		if candidate.URL == "" {
			f.debug("dropping malformed candidate", "title", candidate.Title, "source", candidate.Source)
			continue
		}

		if !f.passesDate(candidate) {
			f.debug("rejected by date filter", "url", candidate.URL, "published", candidate.PublishedRaw)
			continue
		}

		score, ok := f.evaluate(candidate)
		if !ok {
			f.debug("rejected by relevance filter", "url", candidate.URL, "score", score)
			continue
		}

		accepted = append(accepted, domain.ScoredArticle{Article: candidate, Score: score})
	}

	sort.SliceStable(accepted, func(i, j int) bool {
		a, b := accepted[i].PublishedAt, accepted[j].PublishedAt
		if a.IsZero() {
			return false
		}
		if b.IsZero() {
			return true
		}
		return a.After(b)
	})

	f.info("relevance filter applied", "candidates", len(candidates), "accepted", len(accepted))
	return accepted
}

func (f *Filter) passesDate(article domain.Article) bool {
	if f.cfg.DatePolicy == DatePolicyOff {
		return true
	}

	if article.PublishedAt.IsZero() {
		if article.PublishedRaw != "" {
			f.debug("unparseable published date kept", "url", article.URL, "published", article.PublishedRaw)
		}
		return true
	}

	switch f.cfg.DatePolicy {
	case DatePolicyWindow:
		cutoff := f.now().AddDate(0, 0, -f.cfg.LookbackDays)
		return !article.PublishedAt.Before(cutoff)
	default:
		return article.PublishedAt.Year() == f.cfg.TargetYear
	}
}

func (f *Filter) evaluate(article domain.Article) (int, bool) {
	if f.cfg.Policy == PolicyOff {
		return f.Score(article), true
	}

	if f.cfg.Policy == PolicyTitle {
		title := strings.ToLower(article.Title)
		for _, keyword := range f.keywords.Primary {
			if strings.Contains(title, strings.ToLower(keyword)) {
				return f.cfg.Threshold, true
			}
		}
		return 0, false
	}

	score := f.Score(article)
	return score, score >= f.cfg.Threshold
}

// Score computes the additive relevance score for a candidate. Half points
// accumulate in the running total; the result is floored at zero and
// truncated to an integer. All matches are case-insensitive substring tests.
func (f *Filter) Score(article domain.Article) int {
	title := strings.ToLower(article.Title)
	summary := strings.ToLower(article.Summary)
	source := strings.ToLower(article.Source)

	var score float64

	for _, keyword := range f.keywords.Primary {
		kw := strings.ToLower(keyword)
		if strings.Contains(title, kw) {
			score += 3
		}
		if strings.Contains(summary, kw) {
			score += 2
		}
	}

	for _, keyword := range f.keywords.Secondary {
		kw := strings.ToLower(keyword)
		if strings.Contains(title, kw) {
			score += 2
		}
		if strings.Contains(summary, kw) {
			score += 1
		}
	}

	for _, keyword := range f.keywords.Tertiary {
		kw := strings.ToLower(keyword)
		if strings.Contains(title, kw) {
			score += 1
		}
		if strings.Contains(summary, kw) {
			score += 0.5
		}
	}

	for _, token := range f.keywords.SourceAffinity {
		if strings.Contains(source, strings.ToLower(token)) {
			score += 1
		}
	}

	for _, keyword := range f.keywords.Irrelevant {
		kw := strings.ToLower(keyword)
		if strings.Contains(title, kw) {
			score -= 2
		}
		if strings.Contains(summary, kw) {
			score -= 1
		}
	}

	if score < 0 {
		score = 0
	}
	return int(score)
}

func (f *Filter) debug(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Debug(msg, args...)
	}
}

func (f *Filter) info(msg string, args ...any) {
	if f.logger != nil {
		f.logger.Info(msg, args...)
	}
}

package store

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Nevutel/longevityscraper/internal/domain"
	"github.com/Nevutel/longevityscraper/internal/ports"
)

var (
	header = []string{
		"title", "url", "published_date", "summary", "source",
		"relevance_score", "authors", "keywords", "scraped_date",
	}

	htmlTags = regexp.MustCompile(`<[^>]*>`)

	// Textual null markers leaking in from feeds and listing pages.
	nullTokens = map[string]struct{}{
		"nan": {}, "none": {}, "null": {}, "<nil>": {},
	}
)

// CSVWriter serializes a result set to the primary output file and an
// identical backup. The output files are the system of record; an empty
// result set never overwrites a previous good one.
type CSVWriter struct {
	primaryPath string
	backupPath  string
	now         func() time.Time
	logger      *slog.Logger
}

var _ ports.ResultWriter = (*CSVWriter)(nil)

// NewCSVWriter resolves output paths relative to the working directory.
func NewCSVWriter(primaryPath, backupPath string, logger *slog.Logger) *CSVWriter {
	return &CSVWriter{
		primaryPath: absPath(primaryPath),
		backupPath:  absPath(backupPath),
		now:         time.Now,
		logger:      logger,
	}
}

// Persist writes one row per accepted record, every field normalized to
// plain text, plus one uniform scraped_date for the whole batch. The primary
// file is written first, then the backup; a failure in either is fatal to
// the run.
func (w *CSVWriter) Persist(articles []domain.ScoredArticle) error {
	if len(articles) == 0 {
		w.warn("no articles to save, keeping previous output")
		return nil
	}

	scrapedAt := w.now().Format(time.RFC3339)

	rows := make([][]string, 0, len(articles))
	for _, article := range articles {
		rows = append(rows, buildRow(article, scrapedAt))
	}

	if err := writeCSV(w.primaryPath, rows); err != nil {
		return fmt.Errorf("write primary output: %w", err)
	}
	w.info("articles saved", "path", w.primaryPath, "count", len(articles))

	if err := writeCSV(w.backupPath, rows); err != nil {
		return fmt.Errorf("write backup output: %w", err)
	}
	w.info("backup written", "path", w.backupPath)

	return nil
}

func buildRow(article domain.ScoredArticle, scrapedAt string) []string {
	title := normalize(article.Title)
	if title == "" {
		title = "Untitled"
	}

	summary := normalize(article.Summary)
	if summary == "" {
		summary = "No summary available"
	}

	published := normalize(article.PublishedRaw)
	if !article.PublishedAt.IsZero() {
		published = article.PublishedAt.Format(time.RFC3339)
	}

	return []string{
		title,
		normalize(article.URL),
		published,
		summary,
		normalize(article.Source),
		strconv.Itoa(article.Score),
		normalize(article.Authors),
		normalize(article.Keywords),
		scrapedAt,
	}
}

// normalize is the total field cleanup applied uniformly before persistence:
// HTML tags stripped, whitespace collapsed, null-like tokens coerced to
// empty text.
func normalize(value string) string {
	value = htmlTags.ReplaceAllString(value, " ")
	value = strings.Join(strings.Fields(value), " ")
	if _, ok := nullTokens[strings.ToLower(value)]; ok {
		return ""
	}
	return value
}

// writeCSV writes the rows to a temporary sibling and renames it into place,
// so a write failure never corrupts the previous output file.
func writeCSV(path string, rows [][]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp output: %w", err)
	}

	if err := writeRows(tmp, rows); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close %s: %w", tmp.Name(), err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

func writeRows(file *os.File, rows [][]string) error {
	writer := csv.NewWriter(file)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush rows: %w", err)
	}

	return nil
}

func absPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}

func (w *CSVWriter) info(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Info(msg, args...)
	}
}

func (w *CSVWriter) warn(msg string, args ...any) {
	if w.logger != nil {
		w.logger.Warn(msg, args...)
	}
}

package domain

import (
	"strings"
	"time"
)

// Layouts tried in order when normalizing published dates coming from feeds
// and listing pages. RSS sources typically speak RFC1123; journal pages tend
// toward ISO-8601 with or without a trailing Z.
var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2 Jan 2006",
	"02 Jan 2006",
	"January 2, 2006",
}

// ParseDate turns a raw published-date string into a time.Time. A trailing Z
// is treated as UTC; otherwise a bare YYYY-MM-DD prefix is accepted. The
// boolean reports whether parsing succeeded; callers must treat failure as
// "date unknown", never as grounds for rejecting the record.
func ParseDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	if len(raw) >= 10 {
		if t, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

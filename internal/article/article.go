// Package article holds the news article model and the pure pipeline
// stages that shape the collected list before summarization: recency
// filtering, URL deduplication and the volume cap.
package article

import (
	"time"
)

// Article is one discovered news item, normalized from whichever
// search provider produced it. Stages never mutate an Article; they
// build new slices.
type Article struct {
	Keyword     string    // search term that produced this item
	Title       string
	Description string    // short excerpt, may be empty
	URL         string    // canonical link, dedupe key
	Published   string    // raw provider date string, format varies
	PublishedAt time.Time // parsed Published, zero when unparsable
}

// publishedLayouts are tried in order when parsing provider dates.
// DuckDuckGo returns ISO 8601, Google News RSS returns RFC 822 style.
var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
}

// ParsePublished parses a provider date string. The second return is
// false when no known layout matched.
func ParsePublished(s string) (time.Time, bool) {
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// WithinWindow reports whether a belongs to the trailing recency
// window ending at now. Articles whose date could not be parsed are
// kept: recency filtering fails open, an unparsable date must never
// silently drop a result.
func WithinWindow(a Article, now time.Time, window time.Duration) bool {
	if a.PublishedAt.IsZero() {
		return true
	}
	return !a.PublishedAt.Before(now.Add(-window))
}

// FilterRecent keeps the articles inside the window, preserving order.
func FilterRecent(list []Article, now time.Time, window time.Duration) []Article {
	out := make([]Article, 0, len(list))
	for _, a := range list {
		if WithinWindow(a, now, window) {
			out = append(out, a)
		}
	}
	return out
}

// Dedupe removes repeated URLs from the merged list, keeping the
// first occurrence. Articles without a URL are always kept as
// distinct items; an empty string is not a meaningful identity and
// collapsing on it would drop unrelated results.
func Dedupe(list []Article) []Article {
	seen := make(map[string]struct{}, len(list))
	out := make([]Article, 0, len(list))
	for _, a := range list {
		if a.URL == "" {
			out = append(out, a)
			continue
		}
		if _, ok := seen[a.URL]; ok {
			continue
		}
		seen[a.URL] = struct{}{}
		out = append(out, a)
	}
	return out
}

// Cap truncates the list to its first k entries. k <= 0 means no cap.
func Cap(list []Article, k int) []Article {
	if k <= 0 || len(list) <= k {
		return list
	}
	return list[:k]
}

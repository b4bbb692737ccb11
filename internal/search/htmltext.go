package search

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// htmlToText strips markup from a feed description. Google News
// descriptions are HTML fragments (anchor plus source name); the
// summarizer wants plain text. On parse failure the input is returned
// unchanged.
func htmlToText(s string) string {
	if !strings.Contains(s, "<") {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return strings.TrimSpace(s)
	}

	text := doc.Text()
	// Collapse the whitespace left behind by removed tags.
	return strings.Join(strings.Fields(text), " ")
}

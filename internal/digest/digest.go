// Package digest renders the collected articles into the text block
// handed to the summarizer.
package digest

import (
	"fmt"
	"strings"

	"github.com/juyoungkim-kream/scrap/internal/article"
)

// maxDescriptionRunes bounds each article excerpt inside the prompt.
const maxDescriptionRunes = 200

// Build renders one numbered entry per article. An empty input
// returns an empty string, which tells the caller to skip
// summarization entirely.
func Build(articles []article.Article) string {
	if len(articles) == 0 {
		return ""
	}

	var lines []string
	for i, a := range articles {
		var b strings.Builder
		b.WriteString(fmt.Sprintf("[%d] 키워드: %s\n", i+1, a.Keyword))
		b.WriteString(fmt.Sprintf("제목: %s\n", a.Title))
		b.WriteString(fmt.Sprintf("내용: %s\n", truncateRunes(a.Description, maxDescriptionRunes)))
		b.WriteString(fmt.Sprintf("URL: %s\n", a.URL))
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// truncateRunes cuts s at max runes and marks the cut. Runes, not
// bytes: the excerpts are mostly Korean.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

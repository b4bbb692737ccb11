package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/juyoungkim-kream/scrap/internal/article"
)

const googleNewsBaseURL = "https://news.google.com/rss/search"

// GoogleNewsClient reads the Google News search RSS feed, one feed
// per keyword. This is the unfiltered collection mode: the feed's own
// recency is trusted and the first maxResults entries are taken as-is.
type GoogleNewsClient struct {
	baseURL    string
	lang       string // hl parameter
	country    string // gl parameter
	maxResults int
	parser     *gofeed.Parser
}

func NewGoogleNewsClient(lang, country string, maxResults int, timeout time.Duration) *GoogleNewsClient {
	parser := gofeed.NewParser()
	parser.UserAgent = "Mozilla/5.0"
	parser.Client = &http.Client{Timeout: timeout}
	return &GoogleNewsClient{
		baseURL:    googleNewsBaseURL,
		lang:       lang,
		country:    country,
		maxResults: maxResults,
		parser:     parser,
	}
}

func (c *GoogleNewsClient) Name() string {
	return "googlenews"
}

func (c *GoogleNewsClient) Search(ctx context.Context, keyword string) ([]article.Article, error) {
	q := url.Values{}
	q.Set("q", keyword)
	q.Set("hl", c.lang)
	q.Set("gl", c.country)
	q.Set("ceid", fmt.Sprintf("%s:%s", c.country, c.lang))

	feed, err := c.parser.ParseURLWithContext(c.baseURL+"?"+q.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("googlenews fetch %q: %w", keyword, err)
	}

	items := feed.Items
	if c.maxResults > 0 && len(items) > c.maxResults {
		items = items[:c.maxResults]
	}

	articles := make([]article.Article, 0, len(items))
	for _, item := range items {
		a := article.Article{
			Keyword:     keyword,
			Title:       item.Title,
			Description: htmlToText(item.Description),
			URL:         item.Link,
			Published:   item.Published,
		}
		if item.PublishedParsed != nil {
			a.PublishedAt = *item.PublishedParsed
		} else if t, ok := article.ParsePublished(item.Published); ok {
			a.PublishedAt = t
		}
		articles = append(articles, a)
	}

	return articles, nil
}

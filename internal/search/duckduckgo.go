package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/juyoungkim-kream/scrap/internal/article"
)

const duckduckgoBaseURL = "https://duckduckgo.com/news.js"

// DuckDuckGoClient queries the DuckDuckGo news endpoint, one request
// per keyword. This is the date-filtered collection mode: results
// carry an ISO 8601 timestamp and anything older than the recency
// window is dropped during normalization. Results without a usable
// timestamp are kept.
type DuckDuckGoClient struct {
	baseURL    string
	region     string // kl parameter, e.g. kr-kr
	maxResults int
	window     time.Duration
	httpClient *http.Client

	// now is stubbed in tests.
	now func() time.Time
}

func NewDuckDuckGoClient(region string, maxResults, daysFilter int, timeout time.Duration) *DuckDuckGoClient {
	return &DuckDuckGoClient{
		baseURL:    duckduckgoBaseURL,
		region:     region,
		maxResults: maxResults,
		window:     time.Duration(daysFilter) * 24 * time.Hour,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

func (c *DuckDuckGoClient) Name() string {
	return "duckduckgo"
}

func (c *DuckDuckGoClient) Search(ctx context.Context, keyword string) ([]article.Article, error) {
	q := url.Values{}
	q.Set("q", keyword)
	q.Set("o", "json")
	q.Set("kl", c.region)
	q.Set("p", "1")  // moderate safesearch
	q.Set("df", "w") // provider-side last-week hint

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo fetch %q: %w", keyword, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo fetch %q: status %d", keyword, resp.StatusCode)
	}

	var raw duckduckgoResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("duckduckgo decode %q: %w", keyword, err)
	}

	now := c.now()
	articles := make([]article.Article, 0, len(raw.Results))
	for _, r := range raw.Results {
		if c.maxResults > 0 && len(articles) >= c.maxResults {
			break
		}
		a := article.Article{
			Keyword:     keyword,
			Title:       r.Title,
			Description: r.Excerpt,
			URL:         r.URL,
			Published:   r.Date,
		}
		if t, ok := article.ParsePublished(r.Date); ok {
			a.PublishedAt = t
		}
		// Unparsable dates pass the window check; dropping them would
		// lose real articles over a formatting quirk.
		if !article.WithinWindow(a, now, c.window) {
			continue
		}
		articles = append(articles, a)
	}

	return articles, nil
}

type duckduckgoResponse struct {
	Results []duckduckgoResult `json:"results"`
}

type duckduckgoResult struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	URL     string `json:"url"`
	Date    string `json:"date"`
	Source  string `json:"source"`
}

// Package app wires the configured strategies together and runs the
// pipeline: collect per keyword, dedupe, cap, assemble, summarize,
// post to Slack. Execution is strictly sequential; one failure policy
// per stage, no retries.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/juyoungkim-kream/scrap/internal/article"
	"github.com/juyoungkim-kream/scrap/internal/config"
	"github.com/juyoungkim-kream/scrap/internal/digest"
	"github.com/juyoungkim-kream/scrap/internal/logger"
	"github.com/juyoungkim-kream/scrap/internal/metrics"
	"github.com/juyoungkim-kream/scrap/internal/search"
	"github.com/juyoungkim-kream/scrap/internal/slack"
	"github.com/juyoungkim-kream/scrap/internal/summarize"
)

// Notifier is what the pipeline needs from the Slack side.
type Notifier interface {
	Send(ctx context.Context, summary string, articleCount int) error
}

// Pipeline holds the selected strategy implementations. Fields are
// interfaces so tests can substitute fakes.
type Pipeline struct {
	cfg        *config.Config
	provider   search.Provider
	summarizer summarize.Summarizer
	notifier   Notifier

	// pause between keyword searches, paces the provider
	searchPause time.Duration

	closers []func()
}

// New builds a pipeline from the validated configuration.
func New(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	p := &Pipeline{
		cfg:         cfg,
		searchPause: 500 * time.Millisecond,
	}

	switch cfg.SearchProvider {
	case config.ProviderGoogleNews:
		p.provider = search.NewGoogleNewsClient(cfg.NewsLang, cfg.NewsCountry, cfg.MaxResultsPerKeyword, cfg.RequestTimeout)
	default:
		p.provider = search.NewDuckDuckGoClient(cfg.SearchRegion, cfg.MaxResultsPerKeyword, cfg.DaysFilter, cfg.RequestTimeout)
	}

	modelLabel := cfg.GeminiModel
	switch cfg.Summarizer {
	case config.SummarizerGemini:
		client, err := summarize.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		p.summarizer = client
		p.closers = append(p.closers, client.Close)
	default:
		p.summarizer = summarize.NewLLMAPIClient(cfg.LLMAPIURL, cfg.LLMAPIKey, cfg.LLMModels, cfg.LLMTimeout)
		if len(cfg.LLMModels) > 0 {
			modelLabel = cfg.LLMModels[0]
		}
	}

	p.notifier = slack.NewNotifier(cfg.SlackWebhookURL, cfg.SlackFormat, modelLabel, cfg.RequestTimeout)
	return p, nil
}

func (p *Pipeline) Close() {
	for _, c := range p.closers {
		c()
	}
}

// Run executes one batch. A nil return with zero articles means the
// run was a no-op: nothing collected, nothing posted.
func (p *Pipeline) Run(ctx context.Context) error {
	started := time.Now()

	articles := p.collect(ctx)
	logger.Info("collection finished", "articles", len(articles))
	metrics.Global.AddArticlesCollected(len(articles))

	if len(articles) == 0 {
		logger.Info("no news collected, skipping summary and notification")
		metrics.Global.SetLastRun(time.Since(started))
		return nil
	}

	deduped := article.Dedupe(articles)
	if dropped := len(articles) - len(deduped); dropped > 0 {
		logger.Info("duplicates removed", "count", dropped)
		metrics.Global.AddDuplicatesFiltered(dropped)
	}

	capped := article.Cap(deduped, p.cfg.MaxArticles)
	if len(capped) < len(deduped) {
		logger.Info("volume cap applied", "kept", len(capped), "dropped", len(deduped)-len(capped))
	}

	text := digest.Build(capped)

	summary, err := p.summarizeText(ctx, text)
	if err != nil {
		if p.cfg.StrictSummary {
			metrics.Global.SetError(err.Error())
			return err
		}
		logger.Error("summarization failed, posting failure notice", "error", err)
		summary = summarize.FailedSummary
	}
	metrics.Global.IncrementSummaries()

	nctx, cancel := context.WithTimeout(ctx, p.cfg.RequestTimeout)
	defer cancel()
	if err := p.notifier.Send(nctx, summary, len(capped)); err != nil {
		metrics.Global.SetError(err.Error())
		return err
	}
	metrics.Global.IncrementSlackMessages()

	metrics.Global.SetLastRun(time.Since(started))
	logger.Info("pipeline finished", "duration", time.Since(started).String())
	return nil
}

// collect runs one search per keyword in configured order. A failing
// keyword is logged and skipped; it never aborts the run.
func (p *Pipeline) collect(ctx context.Context) []article.Article {
	var all []article.Article
	for i, keyword := range p.cfg.Keywords {
		if i > 0 && p.searchPause > 0 {
			time.Sleep(p.searchPause)
		}

		results, err := p.provider.Search(ctx, keyword)
		if err != nil {
			logger.Error("search failed", "keyword", keyword, "provider", p.provider.Name(), "error", err)
			metrics.Global.RecordKeyword(true)
			continue
		}
		metrics.Global.RecordKeyword(false)
		logger.Debug("search ok", "keyword", keyword, "results", len(results))
		all = append(all, results...)
	}
	return all
}

// summarizeText short-circuits on empty input: no articles means no
// network call, just the fixed sentinel.
func (p *Pipeline) summarizeText(ctx context.Context, text string) (string, error) {
	if text == "" {
		return summarize.NoNewsSummary, nil
	}

	sctx, cancel := context.WithTimeout(ctx, p.cfg.LLMTimeout)
	defer cancel()

	summary, err := p.summarizer.Summarize(sctx, text)
	if err != nil {
		return "", fmt.Errorf("summarize: %w", err)
	}
	return summary, nil
}

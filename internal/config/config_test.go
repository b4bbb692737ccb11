package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so tests are hermetic.
func clearEnv(t *testing.T) {
	t.Helper()
	keys := []string{
		"NEWS_KEYWORDS", "KEYWORDS_CONFIG_PATH", "SEARCH_PROVIDER", "SUMMARIZER",
		"LLM_API_KEY", "LLM_API_URL", "LLM_MODELS", "GEMINI_API_KEY", "GEMINI_MODEL",
		"SLACK_WEBHOOK_URL", "SLACK_FORMAT", "STRICT_SUMMARY",
		"MAX_RESULTS_PER_KEYWORD", "DAYS_FILTER", "MAX_ARTICLES",
		"SEARCH_REGION", "NEWS_LANG", "NEWS_COUNTRY",
		"REQUEST_TIMEOUT", "LLM_TIMEOUT", "DEBUG",
	}
	for _, k := range keys {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("NEWS_KEYWORDS", "무신사,29CM")
	t.Setenv("LLM_API_KEY", "key")
	t.Setenv("LLM_API_URL", "https://llm.internal/v1/chat")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/x")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"무신사", "29CM"}, cfg.Keywords)
	assert.Equal(t, ProviderDuckDuckGo, cfg.SearchProvider)
	assert.Equal(t, SummarizerLLMAPI, cfg.Summarizer)
	assert.Equal(t, SlackFormatBlocks, cfg.SlackFormat)
	assert.Equal(t, 5, cfg.MaxResultsPerKeyword)
	assert.Equal(t, 7, cfg.DaysFilter)
	assert.Equal(t, 25, cfg.MaxArticles)
	assert.Equal(t, []string{"gemini-2.5-flash"}, cfg.LLMModels)
	assert.Equal(t, "kr-kr", cfg.SearchRegion)
	assert.True(t, cfg.StrictSummary)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 120*time.Second, cfg.LLMTimeout)
}

func TestLoadReportsAllProblemsTogether(t *testing.T) {
	clearEnv(t)
	// Point the keyword fallback at nothing so it fails too.
	t.Setenv("KEYWORDS_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 4) // keywords, webhook, llm key, llm url
	assert.Contains(t, err.Error(), "NEWS_KEYWORDS")
	assert.Contains(t, err.Error(), "SLACK_WEBHOOK_URL")
	assert.Contains(t, err.Error(), "LLM_API_KEY")
	assert.Contains(t, err.Error(), "LLM_API_URL")
}

func TestLoadGeminiSummarizerRequirements(t *testing.T) {
	clearEnv(t)
	t.Setenv("NEWS_KEYWORDS", "kw")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/x")
	t.Setenv("SUMMARIZER", SummarizerGemini)

	_, err := Load()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"GEMINI_API_KEY is required"}, verr.Problems)

	t.Setenv("GEMINI_API_KEY", "gkey")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gemini-1.5-flash", cfg.GeminiModel)
}

func TestLoadKeywordsFromYAMLFile(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	os.Unsetenv("NEWS_KEYWORDS")

	path := filepath.Join(t.TempDir(), "keywords.yaml")
	require.NoError(t, os.WriteFile(path, []byte("keywords:\n  - 지그재그\n  - 에이블리\n"), 0o644))
	t.Setenv("KEYWORDS_CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"지그재그", "에이블리"}, cfg.Keywords)
}

func TestLoadModelChainAndOverrides(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("LLM_MODELS", "model-a, model-b ,model-c")
	t.Setenv("MAX_ARTICLES", "15")
	t.Setenv("DAYS_FILTER", "3")
	t.Setenv("STRICT_SUMMARY", "false")
	t.Setenv("LLM_TIMEOUT", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"model-a", "model-b", "model-c"}, cfg.LLMModels)
	assert.Equal(t, 15, cfg.MaxArticles)
	assert.Equal(t, 3, cfg.DaysFilter)
	assert.False(t, cfg.StrictSummary)
	assert.Equal(t, 60*time.Second, cfg.LLMTimeout)
}

func TestValidateRejectsUnknownStrategies(t *testing.T) {
	clearEnv(t)
	setRequired(t)
	t.Setenv("SEARCH_PROVIDER", "bing")
	t.Setenv("SLACK_FORMAT", "attachments")

	_, err := Load()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Problems, 2)
}

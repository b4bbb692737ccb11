// Package config loads the pipeline configuration from the
// environment. Everything is read once at startup and validated as a
// whole, so the operator sees every missing value in one error
// instead of hitting them one run at a time.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider / summarizer / notification strategy names accepted by the
// environment. Selection is a deployment decision, not runtime logic.
const (
	ProviderDuckDuckGo = "duckduckgo"
	ProviderGoogleNews = "googlenews"

	SummarizerLLMAPI = "llmapi"
	SummarizerGemini = "gemini"

	SlackFormatBlocks = "blocks"
	SlackFormatText   = "text"
)

type Config struct {
	// Search settings
	Keywords             []string
	SearchProvider       string // duckduckgo | googlenews
	MaxResultsPerKeyword int
	DaysFilter           int    // recency window in days (duckduckgo mode)
	SearchRegion         string // duckduckgo region, e.g. kr-kr
	NewsLang             string // googlenews hl parameter
	NewsCountry          string // googlenews gl parameter

	// Pipeline settings
	MaxArticles int // volume cap before summarization

	// Summarizer settings
	Summarizer    string   // llmapi | gemini
	LLMAPIKey     string
	LLMAPIURL     string
	LLMModels     []string // fallback chain, tried in order
	GeminiAPIKey  string
	GeminiModel   string
	StrictSummary bool // abort on summarization failure instead of posting a failure notice

	// Slack settings
	SlackWebhookURL string
	SlackFormat     string // blocks | text

	// App settings
	Debug          bool
	RequestTimeout time.Duration // search and webhook calls
	LLMTimeout     time.Duration // summarization call
}

// keywordsFile is the YAML fallback for the keyword list.
// keywords:
//   - 무신사
//   - 29CM
type keywordsFile struct {
	Keywords []string `yaml:"keywords"`
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		SearchProvider:       ProviderDuckDuckGo,
		MaxResultsPerKeyword: 5,
		DaysFilter:           7,
		SearchRegion:         "kr-kr",
		NewsLang:             "ko",
		NewsCountry:          "KR",
		MaxArticles:          25,
		Summarizer:           SummarizerLLMAPI,
		LLMModels:            []string{"gemini-2.5-flash"},
		GeminiModel:          "gemini-1.5-flash",
		StrictSummary:        true,
		SlackFormat:          SlackFormatBlocks,
		RequestTimeout:       30 * time.Second,
		LLMTimeout:           120 * time.Second,
	}

	// Load from environment
	cfg.LLMAPIKey = os.Getenv("LLM_API_KEY")
	cfg.LLMAPIURL = os.Getenv("LLM_API_URL")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.SlackWebhookURL = os.Getenv("SLACK_WEBHOOK_URL")

	if v := os.Getenv("SEARCH_PROVIDER"); v != "" {
		cfg.SearchProvider = v
	}
	if v := os.Getenv("SUMMARIZER"); v != "" {
		cfg.Summarizer = v
	}
	if v := os.Getenv("SLACK_FORMAT"); v != "" {
		cfg.SlackFormat = v
	}
	if v := os.Getenv("LLM_MODELS"); v != "" {
		cfg.LLMModels = splitList(v)
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
	if v := os.Getenv("SEARCH_REGION"); v != "" {
		cfg.SearchRegion = v
	}
	if v := os.Getenv("NEWS_LANG"); v != "" {
		cfg.NewsLang = v
	}
	if v := os.Getenv("NEWS_COUNTRY"); v != "" {
		cfg.NewsCountry = v
	}

	cfg.MaxResultsPerKeyword = getEnvIntOrDefault("MAX_RESULTS_PER_KEYWORD", cfg.MaxResultsPerKeyword)
	cfg.DaysFilter = getEnvIntOrDefault("DAYS_FILTER", cfg.DaysFilter)
	cfg.MaxArticles = getEnvIntOrDefault("MAX_ARTICLES", cfg.MaxArticles)

	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			cfg.RequestTimeout = time.Duration(sec) * time.Second
		}
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
			cfg.LLMTimeout = time.Duration(sec) * time.Second
		}
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}
	if v := os.Getenv("STRICT_SUMMARY"); v != "" {
		cfg.StrictSummary = v != "false"
	}

	// Keywords: env wins, YAML file is the fallback.
	if v := os.Getenv("NEWS_KEYWORDS"); v != "" {
		cfg.Keywords = splitList(v)
	} else {
		path := getEnvOrDefault("KEYWORDS_CONFIG_PATH", "configs/keywords.yaml")
		kws, err := loadKeywordsFile(path)
		if err == nil {
			cfg.Keywords = kws
		}
	}

	return cfg, cfg.Validate()
}

func loadKeywordsFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var kf keywordsFile
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&kf); err != nil {
		return nil, err
	}
	return kf.Keywords, nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

// ValidationError collects every configuration problem found in one
// pass so the operator can fix them all at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Problems, "; "))
}

func (c *Config) Validate() error {
	var problems []string

	if len(c.Keywords) == 0 {
		problems = append(problems, "NEWS_KEYWORDS (or a keywords config file) is required")
	}
	if c.SearchProvider != ProviderDuckDuckGo && c.SearchProvider != ProviderGoogleNews {
		problems = append(problems, fmt.Sprintf("SEARCH_PROVIDER must be %q or %q", ProviderDuckDuckGo, ProviderGoogleNews))
	}
	if c.SlackWebhookURL == "" {
		problems = append(problems, "SLACK_WEBHOOK_URL is required")
	}
	if c.SlackFormat != SlackFormatBlocks && c.SlackFormat != SlackFormatText {
		problems = append(problems, fmt.Sprintf("SLACK_FORMAT must be %q or %q", SlackFormatBlocks, SlackFormatText))
	}

	switch c.Summarizer {
	case SummarizerLLMAPI:
		if c.LLMAPIKey == "" {
			problems = append(problems, "LLM_API_KEY is required")
		}
		if c.LLMAPIURL == "" {
			problems = append(problems, "LLM_API_URL is required")
		}
		if len(c.LLMModels) == 0 {
			problems = append(problems, "LLM_MODELS must name at least one model")
		}
	case SummarizerGemini:
		if c.GeminiAPIKey == "" {
			problems = append(problems, "GEMINI_API_KEY is required")
		}
	default:
		problems = append(problems, fmt.Sprintf("SUMMARIZER must be %q or %q", SummarizerLLMAPI, SummarizerGemini))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

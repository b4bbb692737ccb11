package summarize

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/juyoungkim-kream/scrap/internal/logger"
)

// LLMAPIClient talks to the internal LLM gateway: bearer-token JSON
// POST in the chat-completions shape. Candidate models are tried in
// order; a model the gateway does not know advances the chain, any
// other failure aborts. When the whole chain is exhausted the fixed
// FailedSummary sentinel is returned instead of an error, so the
// Slack message can still say what went wrong.
type LLMAPIClient struct {
	apiURL     string
	apiKey     string
	models     []string
	httpClient *http.Client
}

func NewLLMAPIClient(apiURL, apiKey string, models []string, timeout time.Duration) *LLMAPIClient {
	return &LLMAPIClient{
		apiURL:     apiURL,
		apiKey:     apiKey,
		models:     models,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *LLMAPIClient) Summarize(ctx context.Context, newsText string) (string, error) {
	prompt := BuildPrompt(newsText)

	for _, model := range c.models {
		summary, err := c.summarizeOnce(ctx, model, prompt)
		if err == nil {
			return summary, nil
		}
		if isModelNotFound(err) {
			logger.Warn("model not available, trying next", "model", model, "error", err)
			continue
		}
		return "", fmt.Errorf("%w: model %s: %v", ErrSummarize, model, err)
	}

	logger.Error("all candidate models exhausted", "models", strings.Join(c.models, ","))
	return FailedSummary, nil
}

func (c *LLMAPIClient) summarizeOnce(ctx context.Context, model, prompt string) (string, error) {
	payload := map[string]any{
		"target_model_names": model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("custom-llm-provider", "vertex_ai")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &httpError{status: resp.StatusCode, body: string(respBody), model: model}
	}

	return extractSummary(respBody), nil
}

// httpError keeps the status and body around so the fallback chain
// can classify "model not found" responses.
type httpError struct {
	status int
	body   string
	model  string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("llm api status %d: %s", e.status, e.body)
}

// isModelNotFound classifies errors that should advance the model
// fallback chain: a 404, or a client error whose body says the model
// is unknown.
func isModelNotFound(err error) bool {
	he, ok := err.(*httpError)
	if !ok {
		return false
	}
	if he.status == http.StatusNotFound {
		return true
	}
	if he.status >= 400 && he.status < 500 {
		body := strings.ToLower(he.body)
		for _, marker := range []string{"not found", "does not exist", "unknown model"} {
			if strings.Contains(body, marker) {
				return true
			}
		}
	}
	return false
}

// shapeMatcher extracts the summary text from one known response
// shape. Matchers run in a fixed order; the first hit wins.
type shapeMatcher struct {
	name    string
	extract func(raw map[string]any) (string, bool)
}

var responseShapes = []shapeMatcher{
	{
		// OpenAI chat-completions style: choices[0].message.content
		name: "choices",
		extract: func(raw map[string]any) (string, bool) {
			choices, ok := raw["choices"].([]any)
			if !ok || len(choices) == 0 {
				return "", false
			}
			first, ok := choices[0].(map[string]any)
			if !ok {
				return "", false
			}
			msg, ok := first["message"].(map[string]any)
			if !ok {
				return "", false
			}
			content, ok := msg["content"].(string)
			return content, ok
		},
	},
	{
		name:    "content",
		extract: stringField("content"),
	},
	{
		name:    "message",
		extract: stringField("message"),
	},
	{
		name:    "text",
		extract: stringField("text"),
	},
}

func stringField(key string) func(map[string]any) (string, bool) {
	return func(raw map[string]any) (string, bool) {
		s, ok := raw[key].(string)
		return s, ok
	}
}

// extractSummary tries each known response shape in order and falls
// back to the raw body when none match. The gateway fronts several
// providers and does not promise one schema.
func extractSummary(body []byte) string {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err == nil {
		for _, shape := range responseShapes {
			if s, ok := shape.extract(raw); ok {
				logger.Debug("llm response matched shape", "shape", shape.name)
				return s
			}
		}
	}
	return strings.TrimSpace(string(body))
}

// Package slack posts the weekly summary to a Slack incoming
// webhook, either as Block Kit sections or as one plain-text message.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/juyoungkim-kream/scrap/internal/logger"
)

// ErrNotify wraps webhook delivery failures. Delivery is attempted
// exactly once; the operator reruns the job if it fails.
var ErrNotify = errors.New("slack notification failed")

const (
	// Slack caps a section text object at 3000 characters; chunk a
	// little under to leave room for markdown expansion.
	blockChunkSize = 2900

	// Hard limit for a plain-text webhook message is 40000; cut
	// before it.
	textMaxLen = 39000

	headerText = " 경쟁사 주간 동향 "
)

type Notifier struct {
	webhookURL string
	format     string // blocks | text
	modelLabel string // shown in the metadata section
	httpClient *http.Client
}

func NewNotifier(webhookURL, format, modelLabel string, timeout time.Duration) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		format:     format,
		modelLabel: modelLabel,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Send posts the summary. articleCount is shown in the metadata
// section of the blocks format.
func (n *Notifier) Send(ctx context.Context, summary string, articleCount int) error {
	var payload any
	if n.format == "text" {
		payload = buildTextPayload(summary)
	} else {
		payload = buildBlocksPayload(summary, articleCount, n.modelLabel)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: marshal payload: %v", ErrNotify, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: build request: %v", ErrNotify, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotify, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Warn("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: status %d: %s", ErrNotify, resp.StatusCode, respBody)
	}

	logger.Info("summary posted to Slack", "format", n.format, "articles", articleCount)
	return nil
}

type block map[string]any

func buildBlocksPayload(summary string, articleCount int, modelLabel string) map[string]any {
	blocks := []block{
		{
			"type": "header",
			"text": map[string]any{"type": "plain_text", "text": headerText, "emoji": true},
		},
		{
			"type": "section",
			"text": map[string]any{
				"type": "mrkdwn",
				"text": fmt.Sprintf("*기간*: 최근 1주일\n*수집 기사*: %d건\n*요약* (%s)", articleCount, modelLabel),
			},
		},
		{"type": "divider"},
	}

	for _, chunk := range SplitSegments(summary, blockChunkSize) {
		blocks = append(blocks, block{
			"type": "section",
			"text": map[string]any{"type": "mrkdwn", "text": chunk},
		})
	}

	return map[string]any{"blocks": blocks}
}

func buildTextPayload(summary string) map[string]any {
	text := summary
	if len([]rune(text)) > textMaxLen {
		text = string([]rune(text)[:textMaxLen]) + "…"
	}
	return map[string]any{"text": text}
}

// SplitSegments cuts s into rune-safe chunks of at most size
// characters, in order. The chunks concatenate back to s.
func SplitSegments(s string, size int) []string {
	runes := []rune(s)
	var segments []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		segments = append(segments, string(runes[start:end]))
	}
	return segments
}

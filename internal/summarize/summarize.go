// Package summarize turns the assembled news text into a short
// report via a language model. Two interchangeable strategies exist:
// the internal LLM gateway (chat-completions over HTTP) and the
// Gemini API client.
package summarize

import (
	"context"
	"errors"
)

// ErrSummarize wraps every summarization failure so the pipeline can
// distinguish it from collection and notification errors.
var ErrSummarize = errors.New("summarization failed")

// NoNewsSummary is posted-or-logged when collection produced nothing.
// The caller substitutes it without touching the network.
const NoNewsSummary = "수집된 뉴스가 없어 요약을 생성하지 못했습니다."

// FailedSummary is returned when every configured model was tried and
// none produced a result, so the notification can still explain what
// happened.
const FailedSummary = "요약 생성에 실패했습니다. 설정된 모델을 모두 시도했지만 응답을 받지 못했습니다."

type Summarizer interface {
	// Summarize sends the assembled news text to the model and
	// returns the plain-text summary.
	Summarize(ctx context.Context, newsText string) (string, error)
}

// BuildPrompt wraps the news text in the fixed weekly-report
// instruction. The report groups articles by company, three lines per
// company, in Korean.
func BuildPrompt(newsText string) string {
	return "다음 뉴스들을 기업별로 분류하고 핵심 비즈니스 이슈 위주로 3줄씩 요약해줘.\n\n" +
		"형식: '경쟁사 주간 동향' 리포트처럼 기업명별로 구분하고, 각 기업당 3줄 이내로 요약해줘.\n\n" +
		"---\n" +
		newsText
}

package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	KeywordsSearched   int64
	KeywordsFailed     int64
	ArticlesCollected  int64
	DuplicatesFiltered int64
	SummariesGenerated int64
	SlackMessagesSent  int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) RecordKeyword(failed bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.KeywordsSearched++
	if failed {
		m.KeywordsFailed++
	}
}

func (m *Metrics) AddArticlesCollected(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesCollected += int64(n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) IncrementSummaries() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummariesGenerated++
}

func (m *Metrics) IncrementSlackMessages() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SlackMessagesSent++
}

func (m *Metrics) SetLastRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.LastRunDuration = duration
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"keywords_searched":    m.KeywordsSearched,
		"keywords_failed":      m.KeywordsFailed,
		"articles_collected":   m.ArticlesCollected,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"summaries_generated":  m.SummariesGenerated,
		"slack_messages_sent":  m.SlackMessagesSent,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}

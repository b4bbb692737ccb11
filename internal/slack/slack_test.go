package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSegments(t *testing.T) {
	s := strings.Repeat("a", 2900*2+100)

	segments := SplitSegments(s, 2900)

	require.Len(t, segments, 3) // ceil(5900/2900)
	for _, seg := range segments {
		assert.LessOrEqual(t, len([]rune(seg)), 2900)
	}
	assert.Equal(t, s, strings.Join(segments, ""))
}

func TestSplitSegmentsShortInput(t *testing.T) {
	segments := SplitSegments("short", 2900)

	require.Len(t, segments, 1)
	assert.Equal(t, "short", segments[0])
}

func TestSplitSegmentsRuneSafe(t *testing.T) {
	s := strings.Repeat("가", 10)

	segments := SplitSegments(s, 3)

	require.Len(t, segments, 4)
	assert.Equal(t, s, strings.Join(segments, ""))
	for _, seg := range segments {
		assert.True(t, strings.HasPrefix(seg, "가"))
	}
}

func TestSendBlocksPayload(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, "blocks", "gemini-2.5-flash", 5*time.Second)
	summary := strings.Repeat("x", 2900) + "tail"

	require.NoError(t, n.Send(context.Background(), summary, 12))

	blocks, ok := payload["blocks"].([]any)
	require.True(t, ok)
	// header + metadata + divider + 2 summary segments
	require.Len(t, blocks, 5)

	header := blocks[0].(map[string]any)
	assert.Equal(t, "header", header["type"])

	meta := blocks[1].(map[string]any)["text"].(map[string]any)["text"].(string)
	assert.Contains(t, meta, "12건")
	assert.Contains(t, meta, "gemini-2.5-flash")

	assert.Equal(t, "divider", blocks[2].(map[string]any)["type"])

	seg1 := blocks[3].(map[string]any)["text"].(map[string]any)["text"].(string)
	seg2 := blocks[4].(map[string]any)["text"].(map[string]any)["text"].(string)
	assert.Equal(t, summary, seg1+seg2)
}

func TestSendTextPayload(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, "text", "", 5*time.Second)
	require.NoError(t, n.Send(context.Background(), "weekly summary", 3))

	assert.Equal(t, "weekly summary", payload["text"])
	_, hasBlocks := payload["blocks"]
	assert.False(t, hasBlocks)
}

func TestSendTextTruncatesLongSummary(t *testing.T) {
	var payload map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, "text", "", 5*time.Second)
	require.NoError(t, n.Send(context.Background(), strings.Repeat("y", 50000), 1))

	text := payload["text"].(string)
	assert.Len(t, []rune(text), 39001) // 39000 plus the truncation marker
	assert.True(t, strings.HasSuffix(text, "…"))
}

func TestSendSurfacesHTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	n := NewNotifier(srv.URL, "blocks", "m", 5*time.Second)
	err := n.Send(context.Background(), "s", 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotify)
	assert.Contains(t, err.Error(), "400")
}

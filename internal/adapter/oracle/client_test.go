package oracle

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

	"github.com/zawlinnphyo/wordstake/internal/config"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	cfg := config.Config{
		OracleAPIKey:  "test-key",
		OracleBaseURL: srv.URL,
		OracleModel:   "test-model",
		OracleTimeout: 2 * time.Second,
	}
	return New(cfg)
}

func TestChatJSON_ReturnsMessageContent(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req["model"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": `{"ok":true}`}},
			},
		})
	})

	out, err := c.ChatJSON(context.Background(), "sys", "user", 256)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)
}

func TestChatJSON_Non200(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	})
	_, err := c.ChatJSON(context.Background(), "sys", "user", 256)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestChatJSON_EmptyChoices(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})
	_, err := c.ChatJSON(context.Background(), "sys", "user", 256)
	require.Error(t, err)
}

func TestChatJSON_MissingKey(t *testing.T) {
	c := New(config.Config{OracleBaseURL: "http://localhost:1", OracleTimeout: time.Second})
	_, err := c.ChatJSON(context.Background(), "sys", "user", 256)
	require.Error(t, err)
}

func TestBuildUserPrompt_KeepsMetadataTruncatesContent(t *testing.T) {
	content := strings.Repeat("word ", 5000)
	p := BuildUserPrompt(content, "My Novel", 300, 5000, 100)
	assert.Contains(t, p, "Task title: My Novel")
	assert.Contains(t, p, "Target word count: 300")
	assert.Contains(t, p, "Actual word count: 5000")
	assert.LessOrEqual(t, CountTokens(p), 200)
}

func TestTruncateToTokens_NoopUnderBudget(t *testing.T) {
	s := "a short sentence"
	assert.Equal(t, s, truncateToTokens(s, 1000))
}

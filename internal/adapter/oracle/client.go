// Package oracle implements the quality-oracle client and the strict
// parse-or-fallback handling of its responses.
package oracle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/zawlinnphyo/wordstake/internal/adapter/observability"
	"github.com/zawlinnphyo/wordstake/internal/config"
	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// Client implements domain.OracleClient against an OpenAI-compatible chat
// completions endpoint. Calls are single-attempt: a failure degrades to the
// caller's fallback policy rather than blocking the user on retries.
type Client struct {
	cfg config.Config
	hc  *http.Client
}

// New constructs an oracle client with the configured timeout.
func New(cfg config.Config) *Client {
	transport := otelhttp.NewTransport(http.DefaultTransport,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return fmt.Sprintf("Oracle %s %s", r.Method, r.URL.Host)
		}),
	)
	return &Client{cfg: cfg, hc: &http.Client{Timeout: cfg.OracleTimeout, Transport: transport}}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	MaxTokens      int           `json:"max_tokens,omitempty"`
	Temperature    float64       `json:"temperature"`
	ResponseFormat *respFormat   `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatJSON sends the prompts and returns the raw message content. The
// output is untrusted; callers must run it through ParseEvaluation.
func (c *Client) ChatJSON(ctx domain.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	if c.cfg.OracleAPIKey == "" {
		return "", fmt.Errorf("%w: ORACLE_API_KEY missing", domain.ErrInvalidArgument)
	}

	body, err := json.Marshal(chatRequest{
		Model: c.cfg.OracleModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:      maxTokens,
		Temperature:    0,
		ResponseFormat: &respFormat{Type: "json_object"},
	})
	if err != nil {
		return "", fmt.Errorf("op=oracle.chat: marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OracleBaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("op=oracle.chat: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.OracleAPIKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	observability.OracleRequestDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", fmt.Errorf("op=oracle.chat: %w: %v", domain.ErrUpstreamTimeout, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		slog.Warn("oracle returned non-200",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(snippet)))
		return "", fmt.Errorf("op=oracle.chat: status %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", fmt.Errorf("op=oracle.chat: decode: %w", err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("op=oracle.chat: empty choices")
	}
	return cr.Choices[0].Message.Content, nil
}

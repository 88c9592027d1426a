// Package dictionary implements the word lookup client and its cache.
package dictionary

import (
	"fmt"
	"net/http"
	"net/url"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/zawlinnphyo/wordstake/internal/config"
	"github.com/zawlinnphyo/wordstake/internal/domain"
)

// Client looks words up against a Free Dictionary API compatible service.
// A 404 is a definitive not-found; any other non-200 status or transport
// error is returned as an error so the caller can degrade to its heuristic.
type Client struct {
	baseURL string
	lang    string
	hc      *http.Client
}

// New constructs a dictionary client from config.
func New(cfg config.Config) *Client {
	transport := otelhttp.NewTransport(http.DefaultTransport,
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return fmt.Sprintf("Dictionary %s %s", r.Method, r.URL.Host)
		}),
	)
	return &Client{
		baseURL: cfg.DictionaryBaseURL,
		lang:    cfg.DictionaryLang,
		hc:      &http.Client{Timeout: cfg.DictionaryTimeout, Transport: transport},
	}
}

// Source identifies this dictionary in per-token result reasons.
func (c *Client) Source() string { return "free" }

// Lookup reports whether word exists in the dictionary.
func (c *Client) Lookup(ctx domain.Context, word string) (bool, error) {
	u := fmt.Sprintf("%s/%s/%s", c.baseURL, c.lang, url.PathEscape(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, fmt.Errorf("op=dictionary.lookup: %w", err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return false, fmt.Errorf("op=dictionary.lookup: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("op=dictionary.lookup: status %d", resp.StatusCode)
	}
}

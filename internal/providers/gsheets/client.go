package gsheets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/preston-bernstein/qb-rankings-service/internal/providers"
)

// Config controls how the client reaches the published sheet.
type Config struct {
	SheetID    string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client reads sheet tabs as CSV through the gviz export endpoint.
type Client struct {
	sheetID    string
	baseURL    string
	httpClient httpDoer
}

// NewClient constructs a sheets client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		sheetID:    strings.TrimSpace(cfg.SheetID),
		baseURL:    normalizeBaseURL(cfg.BaseURL),
		httpClient: resolveHTTPClient(cfg.HTTPClient, cfg.Timeout),
	}
}

// Configured reports whether the client has a real sheet id.
func (c *Client) Configured() bool {
	return c.sheetID != "" && c.sheetID != unconfiguredID
}

// FetchTab downloads one tab as CSV text. An unconfigured client returns
// providers.ErrNotConfigured without touching the network.
func (c *Client) FetchTab(ctx context.Context, tab string) (string, error) {
	if !c.Configured() {
		return "", providers.ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.TabURL(tab), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: tab %q: %w", sourceName, tab, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", &providers.RateLimitError{
			Source:     sourceName,
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
			Message:    fmt.Sprintf("sheets: tab %q rate limited", tab),
		}
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return "", &providers.StatusError{
			Source:     sourceName,
			Tab:        tab,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%s: tab %q: read body: %w", sourceName, tab, err)
	}
	return string(body), nil
}

// TabURL builds the CSV export address for tab:
// {base}/{sheetID}/gviz/tq?tqx=out:csv&sheet={tab}.
func (c *Client) TabURL(tab string) string {
	sheet := strings.ReplaceAll(url.QueryEscape(tab), "+", "%20")
	return fmt.Sprintf("%s/%s/gviz/tq?tqx=out:csv&sheet=%s", c.baseURL, url.PathEscape(c.sheetID), sheet)
}

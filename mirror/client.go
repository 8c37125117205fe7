// Package mirror fetches the markdown rendition of a profile page from an
// external markdown-conversion mirror. One attempt per request, bounded
// timeout, bounded body size; failures surface to the caller and the byline
// pipeline is never invoked on them.
package mirror

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/onnwee/byline-relay/byline"
)

const (
	// DefaultBaseURL is the mirror endpoint prefix; the target URL (minus
	// scheme) is appended to it.
	DefaultBaseURL = "https://r.jina.ai/https://"

	// DefaultTimeout bounds the single fetch attempt.
	DefaultTimeout = 12 * time.Second

	// DefaultUserAgent identifies the relay to the mirror.
	DefaultUserAgent = "byline-relay/1.0"
)

// ErrUpstreamStatus marks a non-success mirror response.
var ErrUpstreamStatus = errors.New("mirror: unexpected upstream status")

// Client issues single-attempt GETs against the mirror. No retry, no
// fallback URL, no caching of failures.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	UserAgent  string
	Timeout    time.Duration
}

// NewClient returns a Client with the given base URL and timeout; zero
// values select the defaults.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTPClient: &http.Client{Timeout: timeout},
		BaseURL:    baseURL,
		UserAgent:  DefaultUserAgent,
		Timeout:    timeout,
	}
}

// MirrorURL builds the mirror request URL for a target page: the fixed base
// prefix plus the target minus its scheme.
func (c *Client) MirrorURL(target string) string {
	t := strings.TrimSpace(target)
	t = strings.TrimPrefix(t, "https://")
	t = strings.TrimPrefix(t, "http://")
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return base + t
}

// FetchMarkdown GETs the mirror rendition of target. The body is truncated
// at byline.MaxRawLen before being returned. Cancelling ctx (e.g. the
// originating client disconnected) aborts the in-flight request.
func (c *Client) FetchMarkdown(ctx context.Context, target string) (string, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.MirrorURL(target), nil)
	if err != nil {
		return "", fmt.Errorf("mirror: build request: %w", err)
	}
	ua := c.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/plain, text/markdown")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("mirror: fetch: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			slog.Warn("failed to close mirror response body", slog.Any("err", err))
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(byline.MaxRawLen)))
	if err != nil {
		return "", fmt.Errorf("mirror: read body: %w", err)
	}
	return string(body), nil
}

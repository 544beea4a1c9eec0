// Package fetcher retrieves source pages. It rotates user agents,
// caps response bodies, and decodes bytes to text with a best-effort
// charset fallback chain.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/jonesrussell/gorecipe/internal/logger"
)

const (
	// maxBodyBytes caps how much of a response is read; recipe pages
	// past this size are bloat, not content.
	maxBodyBytes = 10 << 20

	requestTimeout = 30 * time.Second
)

// userAgents are rotated per request so one fingerprint never dominates.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) Version/17.5 Safari/605.1.15 AppleWebKit/605.1.15 (KHTML, like Gecko)",
	"Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
}

// defaultHeaders accompany every request.
var defaultHeaders = map[string]string{
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Cache-Control":   "no-cache",
}

// Page is one fetched document, decoded to text.
type Page struct {
	URL        string
	StatusCode int
	Body       string
	Headers    http.Header
}

// Fetcher retrieves pages over HTTP.
type Fetcher struct {
	client  *http.Client
	log     logger.Interface
	nextUA  atomic.Uint64
	headers map[string]string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithClient substitutes the HTTP client, used by tests.
func WithClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.client = client
	}
}

// WithHeader injects an extra header on every request.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.headers[key] = value
	}
}

// New builds a fetcher.
func New(log logger.Interface, opts ...Option) *Fetcher {
	if log == nil {
		log = logger.NewNoOp()
	}

	f := &Fetcher{
		client: &http.Client{
			Timeout: requestTimeout,
		},
		log:     log,
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch retrieves a URL and decodes the body to text. Non-2xx statuses
// and transport errors surface as a single descriptive error including
// the URL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", rawURL, err)
	}

	req.Header.Set("User-Agent", f.rotateUA())
	for key, value := range defaultHeaders {
		req.Header.Set(key, value)
	}
	for key, value := range f.headers {
		req.Header.Set(key, value)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			f.log.Warn("failed to close response body", "url", rawURL, "error", closeErr)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("fetch %s: status %d", rawURL, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", rawURL, err)
	}

	body := DecodeBody(raw, resp.Header.Get("Content-Type"))
	f.log.Debug("page fetched",
		"url", rawURL,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"duration", time.Since(start).String())

	return &Page{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Body:       body,
		Headers:    resp.Header,
	}, nil
}

// rotateUA returns the next user agent in round-robin order.
func (f *Fetcher) rotateUA() string {
	n := f.nextUA.Add(1) - 1
	return userAgents[n%uint64(len(userAgents))]
}

// contentTypeCharset pulls the charset parameter out of a Content-Type
// header value.
func contentTypeCharset(contentType string) string {
	for _, part := range strings.Split(contentType, ";") {
		part = strings.TrimSpace(strings.ToLower(part))
		if cs, ok := strings.CutPrefix(part, "charset="); ok {
			return strings.Trim(cs, `"'`)
		}
	}
	return ""
}

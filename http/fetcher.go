// Package http provides an HTTP-based implementation of gmp.Fetcher
// for pages that are served as static markup.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 20 * time.Second

// DefaultUserAgent is a desktop Chrome user agent. Listing sites commonly
// reject requests that do not look like they come from a browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/114.0"

// Ensure Fetcher implements gmp.Fetcher at compile time.
var _ gmp.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using a single GET request.
// It does not execute JavaScript and does not retry.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	header  http.Header
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (20s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
// Defaults to DefaultUserAgent if not specified.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.header.Set("User-Agent", ua)
	}
}

// WithHeader sets an additional request header.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.header.Set(key, value)
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
		header:  http.Header{},
	}
	f.header.Set("User-Agent", DefaultUserAgent)
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Any status outside the 2xx range is returned as an EUNAVAILABLE error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", gmp.Errorf(gmp.EINVALID, "invalid request for %s: %v", url, err)
	}
	req.Header = f.header.Clone()

	resp, err := f.client.Do(req)
	if err != nil {
		return "", gmp.WrapErrorf(gmp.EUNAVAILABLE, err, "fetching %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", gmp.Errorf(gmp.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", gmp.WrapErrorf(gmp.EUNAVAILABLE, err, "reading %s", url)
	}

	return string(body), nil
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

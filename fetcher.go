package gmp

import "context"

// Fetcher retrieves the HTML markup of a page.
type Fetcher interface {
	// Fetch performs a single request for url and returns the page markup.
	// Transport failures, timeouts and non-success statuses are errors.
	// The context controls cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the Fetcher.
	Close() error
}

package mock

import (
	"context"

	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
)

var _ gmp.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of gmp.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

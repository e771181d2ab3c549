// Package rod provides a gmp.Fetcher that renders pages in headless Chrome,
// for listings that are filled in by JavaScript after load.
package rod

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds a single page load, navigation included.
const DefaultFetchTimeout = 20 * time.Second

// Ensure Fetcher implements gmp.Fetcher at compile time.
var _ gmp.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
type Fetcher struct {
	browser   *rod.Browser
	launcher  *launcher.Launcher
	timeout   time.Duration
	userAgent string

	mu     sync.Mutex
	closed atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the timeout for a single fetch.
// Defaults to DefaultFetchTimeout (20s) if not specified.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the browser's User-Agent for every page.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new Fetcher that launches a headless Chrome browser.
// Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, gmp.WrapErrorf(gmp.EUNAVAILABLE, err, "launching browser")
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, gmp.WrapErrorf(gmp.EUNAVAILABLE, err, "connecting to browser")
	}

	f.browser = browser
	f.launcher = l
	return f, nil
}

// Fetch navigates to the URL, waits for the load event and returns the
// rendered HTML.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if f.closed.Load() {
		return "", gmp.Errorf(gmp.EINVALID, "fetcher is closed")
	}
	if err := ctx.Err(); err != nil {
		return "", gmp.WrapErrorf(gmp.EUNAVAILABLE, err, "fetching %s", url)
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", gmp.WrapErrorf(gmp.EUNAVAILABLE, err, "opening page")
	}
	defer page.Close()

	page = page.Context(ctx)

	if f.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
			return "", gmp.WrapErrorf(gmp.EUNAVAILABLE, err, "setting user agent")
		}
	}

	// The listener must be registered before navigation or the main
	// document response can be missed.
	var resp *proto.NetworkResponse
	waitResponse := page.EachEvent(func(e *proto.NetworkResponseReceived) bool {
		if e.Type != proto.NetworkResourceTypeDocument || e.FrameID != page.FrameID {
			return false
		}
		resp = e.Response
		return true
	})

	if err := page.Navigate(url); err != nil {
		return "", gmp.WrapErrorf(gmp.EUNAVAILABLE, err, "navigating to %s", url)
	}
	if err := page.WaitLoad(); err != nil {
		return "", gmp.WrapErrorf(gmp.EUNAVAILABLE, err, "loading %s", url)
	}

	waitResponse()
	if resp == nil {
		if err := ctx.Err(); err != nil {
			return "", gmp.WrapErrorf(gmp.EUNAVAILABLE, err, "loading %s", url)
		}
		return "", gmp.Errorf(gmp.EUNAVAILABLE, "no document response for %s", url)
	}
	if resp.Status < 200 || resp.Status > 299 {
		return "", gmp.Errorf(gmp.EUNAVAILABLE, "HTTP %d for %s", resp.Status, url)
	}

	html, err := page.HTML()
	if err != nil {
		return "", gmp.WrapErrorf(gmp.EUNAVAILABLE, err, "reading %s", url)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	err := f.browser.Close()
	f.launcher.Kill()
	return err
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launcher == nil {
		return 0
	}
	return f.launcher.PID()
}

package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
	gmphttp "github.com/Roshiii-8511/ipo-gmp-scraper/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body><table></table></body></html>"))
		}))
		defer server.Close()

		fetcher := gmphttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "<html><body><table></table></body></html>", html)
	})

	t.Run("sends browser user agent by default", func(t *testing.T) {
		t.Parallel()

		gotUA := make(chan string, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA <- r.UserAgent()
		}))
		defer server.Close()

		fetcher := gmphttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, gmphttp.DefaultUserAgent, <-gotUA)
	})

	t.Run("sends configured headers", func(t *testing.T) {
		t.Parallel()

		headers := make(chan http.Header, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers <- r.Header.Clone()
		}))
		defer server.Close()

		fetcher := gmphttp.NewFetcher(
			gmphttp.WithUserAgent("gmp-test/1.0"),
			gmphttp.WithHeader("Accept-Language", "en-IN"),
		)
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		got := <-headers
		assert.Equal(t, "gmp-test/1.0", got.Get("User-Agent"))
		assert.Equal(t, "en-IN", got.Get("Accept-Language"))
	})

	t.Run("accepts any 2xx status", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNonAuthoritativeInfo)
			_, _ = w.Write([]byte("cached"))
		}))
		defer server.Close()

		fetcher := gmphttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, "cached", html)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		// Use a very short timeout that will expire before server responds
		fetcher := gmphttp.NewFetcher(gmphttp.WithTimeout(10 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, gmp.EUNAVAILABLE, gmp.ErrorCode(err))
	})

	t.Run("returns unavailable error when connection is refused", func(t *testing.T) {
		t.Parallel()

		fetcher := gmphttp.NewFetcher(gmphttp.WithTimeout(time.Second))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://127.0.0.1:1/gmp")
		require.Error(t, err)
		assert.Equal(t, gmp.EUNAVAILABLE, gmp.ErrorCode(err))
		assert.Contains(t, gmp.ErrorMessage(err), "http://127.0.0.1:1/gmp")
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := gmphttp.NewFetcher()
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel() // Cancel immediately

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, gmp.EUNAVAILABLE, gmp.ErrorCode(err))
	})

	t.Run("returns error for non-existent host", func(t *testing.T) {
		t.Parallel()

		fetcher := gmphttp.NewFetcher(gmphttp.WithTimeout(100 * time.Millisecond))
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://non-existent-host.invalid/page")
		require.Error(t, err)
		assert.Equal(t, gmp.EUNAVAILABLE, gmp.ErrorCode(err))
	})

	t.Run("returns unavailable error for non-2xx status codes", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("403 Forbidden"))
		}))
		defer server.Close()

		fetcher := gmphttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, gmp.EUNAVAILABLE, gmp.ErrorCode(err))
		assert.Contains(t, err.Error(), "403")
	})

	t.Run("returns invalid error for malformed URL", func(t *testing.T) {
		t.Parallel()

		fetcher := gmphttp.NewFetcher()
		defer fetcher.Close()

		_, err := fetcher.Fetch(context.Background(), "http://[::1]:namedport")
		require.Error(t, err)
		assert.Equal(t, gmp.EINVALID, gmp.ErrorCode(err))
	})
}

// Compile-time verification that Fetcher implements gmp.Fetcher
var _ gmp.Fetcher = (*gmphttp.Fetcher)(nil)

package scrape

import (
	"net/url"
	"time"

	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
	gmphttp "github.com/Roshiii-8511/ipo-gmp-scraper/http"
)

// Default configuration values.
const (
	DefaultURL        = "https://www.investorgain.com/report/live-ipo-gmp/331/ipo/"
	DefaultUserAgent  = gmphttp.DefaultUserAgent
	DefaultTimeout    = gmphttp.DefaultFetchTimeout
	DefaultOutputPath = "gmp.json"
)

// Config describes one scrape run.
type Config struct {
	// URL is the page to fetch.
	URL string

	// UserAgent is sent with the request.
	UserAgent string

	// Timeout bounds the fetch.
	Timeout time.Duration

	// OutputPath is the envelope file, overwritten on every run.
	OutputPath string

	// Indicators recognize the name and value columns.
	Indicators gmp.Indicators
}

// DefaultConfig returns the configuration of the live IPO GMP report.
func DefaultConfig() Config {
	return Config{
		URL:        DefaultURL,
		UserAgent:  DefaultUserAgent,
		Timeout:    DefaultTimeout,
		OutputPath: DefaultOutputPath,
		Indicators: gmp.DefaultIndicators,
	}
}

// Validate returns an error if the configuration cannot be used for a run.
func (c Config) Validate() error {
	if c.URL == "" {
		return gmp.Errorf(gmp.EINVALID, "url required")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return gmp.Errorf(gmp.EINVALID, "invalid url %q: %v", c.URL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return gmp.Errorf(gmp.EINVALID, "url %q must be http or https", c.URL)
	}
	if c.Timeout <= 0 {
		return gmp.Errorf(gmp.EINVALID, "timeout must be positive")
	}
	if c.OutputPath == "" {
		return gmp.Errorf(gmp.EINVALID, "output path required")
	}
	if len(c.Indicators.Name) == 0 || len(c.Indicators.Value) == 0 {
		return gmp.Errorf(gmp.EINVALID, "name and value indicators required")
	}
	return nil
}

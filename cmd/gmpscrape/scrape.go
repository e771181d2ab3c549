package main

import (
	"context"
	"fmt"
	"io"
	"time"

	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
	"github.com/Roshiii-8511/ipo-gmp-scraper/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Now    func() time.Time

	Fetcher   gmp.Fetcher
	Extractor gmp.Extractor
	Writer    gmp.EnvelopeWriter
}

// ScrapeCmd performs one scrape of URL into OutputPath.
type ScrapeCmd struct {
	URL        string
	OutputPath string
}

// Run executes the scrape. A failed run returns its cause once the failure
// envelope is on disk.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	s := &scrape.Scraper{
		Fetcher:   deps.Fetcher,
		Extractor: deps.Extractor,
		Writer:    deps.Writer,
		Now:       deps.Now,
	}

	result, err := s.Run(deps.Ctx, c.URL, func(e scrape.ProgressEvent) {
		switch e.Type {
		case scrape.ProgressFetching:
			fmt.Fprintln(deps.Stdout, "Fetching:", e.URL)
		case scrape.ProgressSaved:
			fmt.Fprintf(deps.Stdout, "Saved %s with %d records\n", c.OutputPath, e.Records)
		case scrape.ProgressFailed:
			fmt.Fprintf(deps.Stdout, "Saved failure envelope to %s\n", c.OutputPath)
		}
	})
	if err != nil {
		return err
	}
	return result.Err
}

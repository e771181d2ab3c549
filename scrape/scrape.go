// Package scrape runs one fetch, extract and save cycle.
// Whatever happens during fetch and extraction, an envelope is written so
// that consumers of the output file always find it in a known shape.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"time"

	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
)

// Scraper fetches a page, extracts its records and writes the envelope.
type Scraper struct {
	Fetcher   gmp.Fetcher
	Extractor gmp.Extractor
	Writer    gmp.EnvelopeWriter

	// Now returns the envelope timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Result is the outcome of a run.
type Result struct {
	// Envelope is what was written.
	Envelope *gmp.Envelope

	// Err is the cause of a failed run, nil on success.
	Err error
}

// Failed reports whether the run failed.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type    ProgressType
	URL     string
	Records int
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressFetching ProgressType = iota
	ProgressSaved
	ProgressFailed
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// Run performs one fetch, extract and save cycle for url.
//
// Fetch and extraction failures, panics included, produce a failure
// envelope and a Result with Err set. The returned error is reserved for
// failures to write the envelope; in that case nothing usable is on disk.
func (s *Scraper) Run(ctx context.Context, url string, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	progress(ProgressEvent{Type: ProgressFetching, URL: url})

	records, runErr := s.collect(ctx, url)

	var env *gmp.Envelope
	if runErr != nil {
		env = gmp.NewFailureEnvelope(s.now(), runErr)
	} else {
		env = gmp.NewEnvelope(s.now(), url, records)
	}

	if err := s.Writer.WriteEnvelope(ctx, env); err != nil {
		err = fmt.Errorf("writing envelope: %w", err)
		if runErr != nil {
			err = errors.Join(runErr, err)
		}
		return nil, err
	}

	if runErr != nil {
		progress(ProgressEvent{Type: ProgressFailed, URL: url, Error: runErr})
		return &Result{Envelope: env, Err: runErr}, nil
	}
	progress(ProgressEvent{Type: ProgressSaved, URL: url, Records: env.Count()})
	return &Result{Envelope: env}, nil
}

// collect fetches url and extracts its records.
func (s *Scraper) collect(ctx context.Context, url string) (records []gmp.Record, err error) {
	defer func() {
		if r := recover(); r != nil {
			records = nil
			err = gmp.Errorf(gmp.EINTERNAL, "unexpected failure: %v", r)
		}
	}()

	html, err := s.Fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	records, err = s.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Scraper) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

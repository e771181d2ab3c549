package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
)

// Ensure Extractor implements gmp.Extractor at compile time.
var _ gmp.Extractor = (*Extractor)(nil)

// Extractor finds the listing table in a page and extracts its records.
// When no table yields a record, it scans the page text for label/value pairs.
type Extractor struct {
	indicators gmp.Indicators
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithIndicators sets the header tokens used to recognize the name and value
// columns. Defaults to gmp.DefaultIndicators.
func WithIndicators(ind gmp.Indicators) Option {
	return func(e *Extractor) {
		e.indicators = ind
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{
		indicators: gmp.DefaultIndicators,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the records of the best table in html, or the records found
// by the text scan if there is no usable table. The result is never nil.
func (e *Extractor) Extract(html string) ([]gmp.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, gmp.Errorf(gmp.EINVALID, "failed to parse HTML: %v", err)
	}

	if records, ok := SelectTable(FindTables(doc), e.indicators); ok {
		return records, nil
	}

	records := ScanText(DocumentText(doc))
	if records == nil {
		records = []gmp.Record{}
	}
	return records, nil
}

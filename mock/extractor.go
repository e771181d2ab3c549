package mock

import gmp "github.com/Roshiii-8511/ipo-gmp-scraper"

var _ gmp.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of gmp.Extractor.
type Extractor struct {
	ExtractFn func(html string) ([]gmp.Record, error)
}

func (e *Extractor) Extract(html string) ([]gmp.Record, error) {
	return e.ExtractFn(html)
}

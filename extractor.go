package gmp

// Extractor extracts name/value records from raw HTML.
type Extractor interface {
	// Extract returns records in document order. Finding nothing is not an
	// error: an empty slice is returned. Errors are reserved for markup that
	// cannot be parsed at all.
	Extract(html string) ([]Record, error)
}

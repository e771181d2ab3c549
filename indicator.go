package gmp

import "strings"

// Indicators holds the prioritized tokens used to recognize the name and
// value columns of a table from its header texts. Tokens are lowercase and
// matched as substrings.
type Indicators struct {
	Name  []string
	Value []string
}

// DefaultIndicators recognizes the usual headers of IPO GMP listings.
var DefaultIndicators = Indicators{
	Name:  []string{"ipo", "company", "name", "issue"},
	Value: []string{"gmp", "grey", "premium", "premium (₹)", "gmp(₹)"},
}

// MatchColumn returns the index of the first header that contains any of
// tokens, or -1 if none does. Headers are scanned left to right and, for each
// header, tokens are tried in order. Headers are expected to be lowercase.
func MatchColumn(headers []string, tokens []string) int {
	for i, h := range headers {
		for _, tok := range tokens {
			if strings.Contains(h, tok) {
				return i
			}
		}
	}
	return -1
}

// ResolveColumns returns the name and value column indexes for a table
// with the given header texts. Header texts are lowercased and trimmed
// before matching.
//
// A column that no indicator matches defaults to index 0 (name) or 1 (value)
// when there are at least two headers; a matched column is never overridden.
// ok is false when a column could not be resolved and there are fewer than
// two headers.
func ResolveColumns(headers []string, ind Indicators) (name, value int, ok bool) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	name = MatchColumn(normalized, ind.Name)
	value = MatchColumn(normalized, ind.Value)
	if name >= 0 && value >= 0 {
		return name, value, true
	}

	if len(normalized) < 2 {
		return -1, -1, false
	}
	if name < 0 {
		name = 0
	}
	if value < 0 {
		value = 1
	}
	return name, value, true
}

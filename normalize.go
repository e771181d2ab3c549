package gmp

import (
	"regexp"
	"strconv"
	"strings"
)

// numberRe matches a signed decimal number: optional minus, digits and an
// optional fractional part.
var numberRe = regexp.MustCompile(`-?\d+(\.\d+)?`)

// valueReplacer strips thousands separators and currency markers.
var valueReplacer = strings.NewReplacer(",", "", "₹", "", "Rs.", "")

// Normalize converts free-form value text into a number.
// Thousands separators and currency markers (₹, Rs.) are removed, then the
// first signed decimal number anywhere in the text is parsed.
// Returns nil if s is empty or contains no number.
func Normalize(s string) *float64 {
	if s == "" {
		return nil
	}
	s = strings.TrimSpace(valueReplacer.Replace(s))

	m := numberRe.FindString(s)
	if m == "" {
		return nil
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return nil
	}
	return &v
}

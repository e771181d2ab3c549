package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
	"golang.org/x/net/html"
)

// labelValueRe matches "<label> : <integer>" or "<label> - <integer>" in free
// text, with an optional rupee glyph before the integer. The label is lazy so
// that a dash separator is not swallowed into the label. Spacing around the
// separator may include non-breaking spaces (&nbsp;).
// Decimal and comma-grouped values are deliberately not matched.
var labelValueRe = regexp.MustCompile(`([A-Za-z0-9 &\-_.]{3,60}?)[\s\p{Zs}]*[:\-–][\s\p{Zs}]*₹?[\s\p{Zs}]*(-?\d+)`)

// ScanText returns a record for every non-overlapping label/integer pair in
// text, in order of appearance.
func ScanText(text string) []gmp.Record {
	var records []gmp.Record
	for _, m := range labelValueRe.FindAllStringSubmatch(text, -1) {
		records = append(records, gmp.NewRecord(strings.TrimSpace(m[1]), m[2]))
	}
	return records
}

// DocumentText flattens the document into plain text: every text node is
// trimmed and the non-empty ones are joined with single spaces.
// Script, style and template contents are not text.
func DocumentText(doc *goquery.Document) string {
	var parts []string
	for _, n := range doc.Nodes {
		collectText(n, &parts)
	}
	return strings.Join(parts, " ")
}

func collectText(n *html.Node, parts *[]string) {
	switch n.Type {
	case html.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			*parts = append(*parts, s)
		}
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "template":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, parts)
	}
}

// Package goquery implements gmp.Extractor using CSS selection over the
// parsed page. It finds the best listing table and falls back to scanning
// the page text when no usable table exists.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
)

// Table is a candidate listing table: the cells of its first row and the
// data cells of every following row.
type Table struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of rows in the table, header row included.
func (t Table) Len() int {
	if t.Header == nil && len(t.Rows) == 0 {
		return 0
	}
	return len(t.Rows) + 1
}

// FindTables returns every table in the document, in document order.
// Header cells are read from th and td elements; data cells from td only.
// Rows of nested tables are included in their ancestors' rows.
func FindTables(doc *goquery.Document) []Table {
	var tables []Table
	doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		tables = append(tables, readTable(sel))
	})
	return tables
}

func readTable(sel *goquery.Selection) Table {
	var t Table
	sel.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if i == 0 {
			t.Header = cellTexts(tr.Find("th,td"))
			if t.Header == nil {
				t.Header = []string{}
			}
			return
		}
		t.Rows = append(t.Rows, cellTexts(tr.Find("td")))
	})
	return t
}

func cellTexts(cells *goquery.Selection) []string {
	var texts []string
	cells.Each(func(_ int, c *goquery.Selection) {
		texts = append(texts, strings.TrimSpace(c.Text()))
	})
	return texts
}

// ParseTable maps the table header onto name and value columns using ind
// and returns one record per data row. Rows too short to hold both columns
// are skipped. Returns nil if the columns cannot be resolved.
func ParseTable(t Table, ind gmp.Indicators) []gmp.Record {
	if t.Len() == 0 {
		return nil
	}

	nameIdx, valueIdx, ok := gmp.ResolveColumns(t.Header, ind)
	if !ok {
		return nil
	}
	need := max(nameIdx, valueIdx)

	var records []gmp.Record
	for _, row := range t.Rows {
		if len(row) <= need {
			continue
		}
		records = append(records, gmp.NewRecord(row[nameIdx], row[valueIdx]))
	}
	return records
}

// SelectTable returns the records of the table with the most rows among
// those yielding at least one record. Ties keep the first table in document
// order. ok is false when no table yields a record.
func SelectTable(tables []Table, ind gmp.Indicators) (records []gmp.Record, ok bool) {
	bestLen := 0
	for _, t := range tables {
		parsed := ParseTable(t, ind)
		if len(parsed) == 0 {
			continue
		}
		if n := t.Len(); n > bestLen {
			bestLen = n
			records = parsed
		}
	}
	return records, bestLen > 0
}

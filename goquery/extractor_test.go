package goquery_test

import (
	"fmt"
	"strings"
	"testing"

	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
	"github.com/Roshiii-8511/ipo-gmp-scraper/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements gmp.Extractor at compile time.
var _ gmp.Extractor = (*goquery.Extractor)(nil)

// table renders a table with a header row and n data rows named prefix1..n.
func table(prefix string, n int) string {
	var b strings.Builder
	b.WriteString("<table><tr><th>IPO Name</th><th>GMP (₹)</th></tr>")
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&b, "<tr><td>%s%d</td><td>₹%d</td></tr>", prefix, i, i*10)
	}
	b.WriteString("</table>")
	return b.String()
}

func names(records []gmp.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts records from listing table", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<table>
	<thead><tr><th>Company</th><th>GMP (₹)</th><th>Price</th></tr></thead>
	<tbody>
		<tr><td> Alpha Corp </td><td>₹ 1,234.5</td><td>100</td></tr>
		<tr><td>Beta Ltd</td><td>-50</td><td>200</td></tr>
		<tr><td>Gamma Inc</td><td>N/A</td><td>300</td></tr>
	</tbody>
</table>
</body></html>`

		records, err := goquery.NewExtractor().Extract(html)
		require.NoError(t, err)
		require.Len(t, records, 3)

		assert.Equal(t, "Alpha Corp", records[0].Name)
		assert.Equal(t, "₹ 1,234.5", records[0].RawValue)
		require.NotNil(t, records[0].Value)
		assert.InDelta(t, 1234.5, *records[0].Value, 1e-9)

		assert.Equal(t, "Beta Ltd", records[1].Name)
		require.NotNil(t, records[1].Value)
		assert.InDelta(t, -50.0, *records[1].Value, 1e-9)

		assert.Equal(t, "Gamma Inc", records[2].Name)
		assert.Equal(t, "N/A", records[2].RawValue)
		assert.Nil(t, records[2].Value)
	})

	t.Run("selects table with most rows regardless of order", func(t *testing.T) {
		t.Parallel()

		html := "<html><body>" + table("small", 4) + table("big", 7) + "</body></html>"

		records, err := goquery.NewExtractor().Extract(html)
		require.NoError(t, err)

		require.Len(t, records, 7)
		assert.Equal(t, "big1", records[0].Name)
	})

	t.Run("ties keep first table", func(t *testing.T) {
		t.Parallel()

		html := "<html><body>" + table("first", 3) + table("second", 3) + "</body></html>"

		records, err := goquery.NewExtractor().Extract(html)
		require.NoError(t, err)

		assert.Equal(t, []string{"first1", "first2", "first3"}, names(records))
	})

	t.Run("resolves columns independent of position", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<tr><th>GMP</th><th>Issue Name</th></tr>
<tr><td>45</td><td>Delta Power</td></tr>
</table>`

		records, err := goquery.NewExtractor().Extract(html)
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, "Delta Power", records[0].Name)
		assert.Equal(t, "45", records[0].RawValue)
	})

	t.Run("skips short rows", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<tr><th>Company</th><th>GMP</th></tr>
<tr><td colspan="2">Mainboard IPOs</td></tr>
<tr><td>Alpha Corp</td><td>120</td></tr>
</table>`

		records, err := goquery.NewExtractor().Extract(html)
		require.NoError(t, err)

		assert.Equal(t, []string{"Alpha Corp"}, names(records))
	})

	t.Run("keeps duplicate names in row order", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<tr><th>Company</th><th>GMP</th></tr>
<tr><td>Alpha</td><td>1</td></tr>
<tr><td>Alpha</td><td>2</td></tr>
</table>`

		records, err := goquery.NewExtractor().Extract(html)
		require.NoError(t, err)

		require.Len(t, records, 2)
		assert.Equal(t, "1", records[0].RawValue)
		assert.Equal(t, "2", records[1].RawValue)
	})

	t.Run("falls back to text scan without tables", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Alpha Corp: 120</p><p>Beta Ltd - -30</p></body></html>`

		records, err := goquery.NewExtractor().Extract(html)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "Alpha Corp", records[0].Name)
		assert.Equal(t, "120", records[0].RawValue)
		assert.Equal(t, "Beta Ltd", records[1].Name)
		assert.Equal(t, "-30", records[1].RawValue)
		require.NotNil(t, records[1].Value)
		assert.InDelta(t, -30.0, *records[1].Value, 1e-9)
	})

	t.Run("text scan accepts nbsp separators", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Alpha Corp:&nbsp;120</p><p>Beta Ltd&nbsp;-&nbsp;45</p></body></html>`

		records, err := goquery.NewExtractor().Extract(html)
		require.NoError(t, err)
		require.Len(t, records, 2)

		assert.Equal(t, "Alpha Corp", records[0].Name)
		assert.Equal(t, "120", records[0].RawValue)
		assert.Equal(t, "Beta Ltd", records[1].Name)
		assert.Equal(t, "45", records[1].RawValue)
	})

	t.Run("falls back to text scan when tables yield nothing", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<table><tr><th>Notice</th></tr><tr><td>Closed</td></tr></table>
<div>Alpha Corp: 120</div>
</body></html>`

		records, err := goquery.NewExtractor().Extract(html)
		require.NoError(t, err)
		require.Len(t, records, 1)

		// Text nodes are joined, so the table text runs into the label.
		assert.Equal(t, "Notice Closed Alpha Corp", records[0].Name)
		assert.Equal(t, "120", records[0].RawValue)
	})

	t.Run("returns empty slice when nothing is found", func(t *testing.T) {
		t.Parallel()

		records, err := goquery.NewExtractor().Extract(`<html><body><p>No listings today.</p></body></html>`)
		require.NoError(t, err)

		assert.NotNil(t, records)
		assert.Empty(t, records)
	})

	t.Run("uses custom indicators", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<tr><th>Change</th><th>Ticker</th><th>Close</th></tr>
<tr><td>+1</td><td>ABC</td><td>101.5</td></tr>
</table>`

		e := goquery.NewExtractor(goquery.WithIndicators(gmp.Indicators{
			Name:  []string{"ticker"},
			Value: []string{"close"},
		}))
		records, err := e.Extract(html)
		require.NoError(t, err)
		require.Len(t, records, 1)

		assert.Equal(t, "ABC", records[0].Name)
		require.NotNil(t, records[0].Value)
		assert.InDelta(t, 101.5, *records[0].Value, 1e-9)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		html := table("row", 5)
		e := goquery.NewExtractor()

		first, err := e.Extract(html)
		require.NoError(t, err)
		second, err := e.Extract(html)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

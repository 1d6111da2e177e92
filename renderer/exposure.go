package renderer

import (
	"bytes"
	"fmt"

	"github.com/alimnaqvi/etf-analyzer"
	md "github.com/nao1215/markdown"
)

// ExposureMarkdown renders the three exposure breakdowns. Each dimension is
// cut to the top rows, with the remainder folded into a trailing "..." row so
// the displayed weights still account for the whole portfolio.
func ExposureMarkdown(e *analyzer.Exposure, top int) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio Exposure")
	doc.PlainText(fmt.Sprintf("Total market value: %s", formatValue(e.TotalValue)))

	section := func(title, keyHeader string, records []analyzer.ExposureRecord) {
		doc.H2(title)
		rows := make([][]string, 0, top+1)
		for i, r := range records {
			if top > 0 && i >= top {
				var restValue float64
				var restWeight analyzer.Percent
				for _, rest := range records[i:] {
					restValue += rest.Value
					restWeight += rest.Weight
				}
				rows = append(rows, []string{
					fmt.Sprintf("... %d more", len(records)-i),
					formatValue(restValue),
					restWeight.String(),
				})
				break
			}
			rows = append(rows, []string{r.Key, formatValue(r.Value), r.Weight.String()})
		}
		doc.Table(md.TableSet{
			Header: []string{keyHeader, "Market Value", "Weight"},
			Rows:   rows,
		})
	}

	section("By Country", "Country", e.Country)
	section("By Sector", "Sector", e.Sector)
	section("By Company", "Company", e.Company)

	return doc.String()
}

package renderer

import (
	"bytes"
	"strconv"

	"github.com/alimnaqvi/etf-analyzer"
	md "github.com/nao1215/markdown"
)

// ReturnsMarkdown renders the yearly return tables, fund by fund and then
// blended for the whole portfolio.
func ReturnsMarkdown(fund []analyzer.FundYearlyReturn, portfolio []analyzer.PortfolioYearlyReturn) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Yearly Returns")

	doc.H2("By Fund")
	fundRows := make([][]string, 0, len(fund))
	for _, r := range fund {
		fundRows = append(fundRows, []string{
			strconv.Itoa(r.Year),
			r.FundName,
			formatPrice(r.OpeningPrice),
			formatPrice(r.ClosingPrice),
			r.Return.SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Year", "Fund", "Opening", "Closing", "Return"},
		Rows:   fundRows,
	})

	doc.H2("Portfolio")
	portfolioRows := make([][]string, 0, len(portfolio))
	for _, r := range portfolio {
		portfolioRows = append(portfolioRows, []string{
			strconv.Itoa(r.Year),
			r.Return.SignedString(),
			formatValue(r.OpeningValue),
			strconv.Itoa(r.FundsUsed),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Year", "Return", "Opening Value", "Funds"},
		Rows:   portfolioRows,
	})

	return doc.String()
}

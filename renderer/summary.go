package renderer

import (
	"bytes"
	"fmt"

	"github.com/alimnaqvi/etf-analyzer"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the per-fund and portfolio investment summaries as
// a markdown report.
func SummaryMarkdown(summaries []analyzer.FundSummary, p analyzer.PortfolioSummary) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Investment Summary on %s", p.AsOf))

	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.FundName,
			s.ISIN,
			s.NetInvested.String(),
			formatShares(s.CurrentShares),
			formatPrice(s.LatestPrice),
			formatValue(s.CurrentValue),
			formatValue(s.TotalReturn),
			s.TotalReturnPct.SignedString(),
			s.MoneyWeighted.SignedString(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Fund", "ISIN", "Net Invested", "Shares", "Price", "Value", "Return", "Return %", "IRR"},
		Rows:   rows,
	})

	doc.H2("Portfolio")
	doc.Table(md.TableSet{
		Header: []string{"Net Invested", "Value", "Return", "Return %", "IRR"},
		Rows: [][]string{{
			p.NetInvested.String(),
			formatValue(p.CurrentValue),
			formatValue(p.TotalReturn),
			p.TotalReturnPct.SignedString(),
			p.MoneyWeighted.SignedString(),
		}},
	})

	return doc.String()
}

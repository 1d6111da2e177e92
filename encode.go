package analyzer

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
)

// Output file names, one CSV table per derived dataset.
const (
	PriceHistoryFile     = "fund_price_history.csv"
	FundReturnsFile      = "fund_yearly_returns.csv"
	PortfolioReturnsFile = "portfolio_yearly_returns.csv"
	FundSummaryFile      = "fund_investment_summary.csv"
	PortfolioSummaryFile = "portfolio_investment_summary.csv"
	ExposureCountryFile  = "exposure_country.csv"
	ExposureSectorFile   = "exposure_sector.csv"
	ExposureCompanyFile  = "exposure_company.csv"
)

// formatFloat renders a float for CSV output. NaN is written literally as
// "NaN" so a missing metric stays distinguishable from a zero one.
func formatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func formatPercent(p Percent) string { return formatFloat(float64(p)) }

func writeTable(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// EncodePriceHistory writes the reconstructed per-transaction price points.
func EncodePriceHistory(w io.Writer, prices *PriceHistory) error {
	rows := make([][]string, 0, prices.Len())
	for p := range prices.Points() {
		rows = append(rows, []string{
			p.Date.String(),
			p.ISIN,
			p.Type,
			formatFloat(p.UnitPrice),
		})
	}
	return writeTable(w, []string{"Date", "ISIN", "Type", "UnitPrice"}, rows)
}

// EncodeFundYearlyReturns writes the per-fund calendar-year return table.
func EncodeFundYearlyReturns(w io.Writer, returns []FundYearlyReturn) error {
	rows := make([][]string, 0, len(returns))
	for _, r := range returns {
		rows = append(rows, []string{
			strconv.Itoa(r.Year),
			r.ISIN,
			r.FundName,
			formatFloat(r.OpeningPrice),
			formatFloat(r.ClosingPrice),
			formatPercent(r.Return),
		})
	}
	return writeTable(w, []string{"Year", "ISIN", "FundName", "OpeningPrice", "ClosingPrice", "YearlyReturnPct"}, rows)
}

// EncodePortfolioYearlyReturns writes the blended portfolio return table.
func EncodePortfolioYearlyReturns(w io.Writer, returns []PortfolioYearlyReturn) error {
	rows := make([][]string, 0, len(returns))
	for _, r := range returns {
		rows = append(rows, []string{
			strconv.Itoa(r.Year),
			formatPercent(r.Return),
			formatFloat(r.OpeningValue),
			strconv.Itoa(r.FundsUsed),
		})
	}
	return writeTable(w, []string{"Year", "PortfolioYearlyReturnPct", "OpeningPortfolioValue", "FundsUsed"}, rows)
}

// EncodeFundSummaries writes the per-fund investment summary table.
func EncodeFundSummaries(w io.Writer, summaries []FundSummary) error {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		rows = append(rows, []string{
			s.ISIN,
			s.FundName,
			s.NetInvested.Decimal().String(),
			formatFloat(s.CurrentShares),
			formatFloat(s.LatestPrice),
			formatFloat(s.CurrentValue),
			formatFloat(s.TotalReturn),
			formatPercent(s.TotalReturnPct),
			formatPercent(s.MoneyWeighted),
		})
	}
	header := []string{"ISIN", "FundName", "NetInvested", "CurrentShares", "LatestPrice", "CurrentValue", "TotalReturn", "TotalReturnPct", "MoneyWeightedReturnPct"}
	return writeTable(w, header, rows)
}

// EncodePortfolioSummary writes the single-row portfolio summary table.
func EncodePortfolioSummary(w io.Writer, s PortfolioSummary) error {
	row := []string{
		s.AsOf.String(),
		s.NetInvested.Decimal().String(),
		formatFloat(s.CurrentValue),
		formatFloat(s.TotalReturn),
		formatPercent(s.TotalReturnPct),
		formatPercent(s.MoneyWeighted),
	}
	header := []string{"AsOfDate", "NetInvested", "CurrentValue", "TotalReturn", "TotalReturnPct", "MoneyWeightedReturnPct"}
	return writeTable(w, header, [][]string{row})
}

// EncodeExposureRecords writes one exposure dimension table. keyColumn names
// the dimension column (country, sector or securityName).
func EncodeExposureRecords(w io.Writer, keyColumn string, records []ExposureRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Key,
			formatFloat(r.Value),
			formatPercent(r.Weight),
		})
	}
	return writeTable(w, []string{keyColumn, "UserMarketValue", "Weight"}, rows)
}

func writeFile(dir, name string, encode func(io.Writer) error) error {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", name, err)
	}
	if err := encode(f); err != nil {
		f.Close()
		return fmt.Errorf("cannot write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot close %s: %w", name, err)
	}
	return nil
}

// Encode writes the five transaction analytics tables into dir, creating it
// if needed. Re-running over the same ledger rewrites identical files.
func (a *Analytics) Encode(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", dir, err)
	}
	steps := []struct {
		name   string
		encode func(io.Writer) error
	}{
		{PriceHistoryFile, func(w io.Writer) error { return EncodePriceHistory(w, a.Prices) }},
		{FundReturnsFile, func(w io.Writer) error { return EncodeFundYearlyReturns(w, a.FundYearly) }},
		{PortfolioReturnsFile, func(w io.Writer) error { return EncodePortfolioYearlyReturns(w, a.PortfolioYearly) }},
		{FundSummaryFile, func(w io.Writer) error { return EncodeFundSummaries(w, a.FundSummaries) }},
		{PortfolioSummaryFile, func(w io.Writer) error { return EncodePortfolioSummary(w, a.Portfolio) }},
	}
	for _, step := range steps {
		if err := writeFile(dir, step.name, step.encode); err != nil {
			return err
		}
	}
	return nil
}

// Encode writes the three exposure dimension tables into dir, creating it if
// needed.
func (e *Exposure) Encode(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create output directory %s: %w", dir, err)
	}
	steps := []struct {
		name    string
		column  string
		records []ExposureRecord
	}{
		{ExposureCountryFile, "country", e.Country},
		{ExposureSectorFile, "sector", e.Sector},
		{ExposureCompanyFile, "securityName", e.Company},
	}
	for _, step := range steps {
		records := step.records
		column := step.column
		if err := writeFile(dir, step.name, func(w io.Writer) error {
			return EncodeExposureRecords(w, column, records)
		}); err != nil {
			return err
		}
	}
	return nil
}

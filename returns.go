package analyzer

import (
	"math"
	"sort"

	"github.com/alimnaqvi/etf-analyzer/date"
)

// FundYearlyReturn is the time-weighted return of one fund over one calendar
// year, derived from the reconstructed price series.
type FundYearlyReturn struct {
	Year         int
	ISIN         string
	FundName     string
	OpeningPrice float64
	ClosingPrice float64
	Return       Percent
}

// PortfolioYearlyReturn blends the contributing funds' yearly returns,
// weighted by each fund's opening-of-year holding value.
type PortfolioYearlyReturn struct {
	Year         int
	Return       Percent
	OpeningValue float64
	FundsUsed    int
}

// BuildFundYearlyReturns computes per-fund returns for every calendar year
// from the first observed price year through the as-of year.
//
// A (fund, year) pair is skipped entirely - no record, no error - when no
// opening price resolves (see PriceHistory.OpeningPriceForYear), when the
// resolved opening price is not positive, or when no closing price exists at
// or before min(December 31, as-of). Records are sorted by (year, fund name).
func BuildFundYearlyReturns(prices *PriceHistory, funds *FundList, asOf date.Date) []FundYearlyReturn {
	minYear, ok := prices.MinYear()
	if !ok {
		return nil
	}

	var records []FundYearlyReturn
	for _, isin := range prices.Funds() {
		for year := minYear; year <= asOf.Year(); year++ {
			opening := prices.OpeningPriceForYear(isin, year)
			if math.IsNaN(opening) || opening <= 0 {
				continue
			}
			end := date.Min(date.New(year, 12, 31), asOf)
			closing := prices.PriceAsOf(isin, end)
			if math.IsNaN(closing) {
				continue
			}
			records = append(records, FundYearlyReturn{
				Year:         year,
				ISIN:         isin,
				FundName:     funds.Name(isin),
				OpeningPrice: opening,
				ClosingPrice: closing,
				Return:       Percent((closing/opening - 1.0) * 100.0),
			})
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Year != records[j].Year {
			return records[i].Year < records[j].Year
		}
		return records[i].FundName < records[j].FundName
	})
	return records
}

// BuildPortfolioYearlyReturns blends fund yearly returns into one record per
// year: Σ(opening_value × return) / Σ(opening_value), where opening value is
// the opening price times the shares held as of January 1. Funds with a
// non-positive opening value (not yet held that year) are excluded from the
// blend, and a year with no qualifying fund produces no row.
func BuildPortfolioYearlyReturns(fundYearly []FundYearlyReturn, shares *SharesHistory) []PortfolioYearlyReturn {
	byYear := make(map[int][]FundYearlyReturn)
	var years []int
	for _, r := range fundYearly {
		if _, ok := byYear[r.Year]; !ok {
			years = append(years, r.Year)
		}
		byYear[r.Year] = append(byYear[r.Year], r)
	}
	sort.Ints(years)

	var records []PortfolioYearlyReturn
	for _, year := range years {
		start := date.New(year, 1, 1)
		totalOpening := 0.0
		weightedReturn := 0.0
		used := 0
		for _, r := range byYear[year] {
			openingValue := shares.SharesAsOf(r.ISIN, start) * r.OpeningPrice
			if openingValue <= 0 {
				continue
			}
			totalOpening += openingValue
			weightedReturn += openingValue * float64(r.Return)
			used++
		}
		if used == 0 {
			continue
		}
		records = append(records, PortfolioYearlyReturn{
			Year:         year,
			Return:       Percent(weightedReturn / totalOpening),
			OpeningValue: totalOpening,
			FundsUsed:    used,
		})
	}
	return records
}

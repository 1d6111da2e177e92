package analyzer

import (
	"math"
	"sort"

	"github.com/alimnaqvi/etf-analyzer/date"
)

// FundSummary is the net-invested / current-value / total-return snapshot of
// one fund as of the reference date.
type FundSummary struct {
	ISIN     string
	FundName string
	// NetInvested is the negated sum of the fund's signed cash flows:
	// a net buyer's outflows come out positive.
	NetInvested   Money
	CurrentShares float64
	LatestPrice   float64
	CurrentValue  float64
	TotalReturn   float64
	// TotalReturnPct is NaN when net invested is not positive.
	TotalReturnPct Percent
	// MoneyWeighted is the fund's annualized IRR, NaN when unsolvable.
	MoneyWeighted Percent
}

// PortfolioSummary is the single aggregate row across all funds. Its IRR is
// solved from scratch over the pooled, date-summed cash flows plus the
// portfolio's own terminal value; averaging fund-level IRRs would be wrong
// because IRR does not compose linearly.
type PortfolioSummary struct {
	AsOf           date.Date
	NetInvested    Money
	CurrentValue   float64
	TotalReturn    float64
	TotalReturnPct Percent
	MoneyWeighted  Percent
}

// BuildFundSummaries computes one summary per fund in the ledger, sorted by
// current value descending.
func BuildFundSummaries(l *Ledger, shares *SharesHistory, prices *PriceHistory, funds *FundList, asOf date.Date) []FundSummary {
	var summaries []FundSummary
	for _, isin := range l.Funds() {
		netInvested := l.NetCashFlow(isin).Neg()
		currentShares := shares.CurrentShares(isin)
		latestPrice := prices.LatestPrice(isin)
		currentValue := currentShares * latestPrice
		if math.IsNaN(currentValue) {
			currentValue = 0
		}

		totalReturn := currentValue - netInvested.AsFloat()
		totalReturnPct := Percent(math.NaN())
		if netInvested.IsPositive() {
			totalReturnPct = Percent(totalReturn / netInvested.AsFloat() * 100.0)
		}

		summaries = append(summaries, FundSummary{
			ISIN:           isin,
			FundName:       funds.Name(isin),
			NetInvested:    netInvested,
			CurrentShares:  currentShares,
			LatestPrice:    latestPrice,
			CurrentValue:   currentValue,
			TotalReturn:    totalReturn,
			TotalReturnPct: totalReturnPct,
			MoneyWeighted:  MoneyWeightedReturn(l.CashFlows(isin), asOf, currentValue),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].CurrentValue > summaries[j].CurrentValue
	})
	return summaries
}

// BuildPortfolioSummary aggregates fund summaries by summing net-invested
// and current-value columns, then solves the portfolio IRR over the ledger's
// pooled cash flows.
func BuildPortfolioSummary(l *Ledger, fundSummaries []FundSummary, asOf date.Date) PortfolioSummary {
	netInvested := M(0)
	currentValue := 0.0
	for _, s := range fundSummaries {
		netInvested = netInvested.Add(s.NetInvested)
		currentValue += s.CurrentValue
	}

	totalReturn := currentValue - netInvested.AsFloat()
	totalReturnPct := Percent(math.NaN())
	if netInvested.IsPositive() {
		totalReturnPct = Percent(totalReturn / netInvested.AsFloat() * 100.0)
	}

	return PortfolioSummary{
		AsOf:           asOf,
		NetInvested:    netInvested,
		CurrentValue:   currentValue,
		TotalReturn:    totalReturn,
		TotalReturnPct: totalReturnPct,
		MoneyWeighted:  MoneyWeightedReturn(l.PooledCashFlows(), asOf, currentValue),
	}
}

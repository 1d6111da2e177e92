package analyzer

import (
	"errors"

	"github.com/alimnaqvi/etf-analyzer/date"
)

// Analytics is the complete output of one transactions analytics run: every
// derived table, computed once from the normalized ledger.
type Analytics struct {
	AsOf            date.Date
	Prices          *PriceHistory
	Shares          *SharesHistory
	FundYearly      []FundYearlyReturn
	PortfolioYearly []PortfolioYearlyReturn
	FundSummaries   []FundSummary
	Portfolio       PortfolioSummary
}

// ErrEmptyLedger is returned when a ledger holds no settled transactions, so
// no reference date (and no analytics) can be derived.
var ErrEmptyLedger = errors.New("ledger has no settled transactions")

// Analyze runs the full transactions pipeline. A zero asOf derives the
// reference date from the ledger's newest transaction; a non-zero one
// overrides it, which caps closing prices and dates the terminal IRR flows.
func Analyze(l *Ledger, funds *FundList, asOf date.Date) (*Analytics, error) {
	if asOf.IsZero() {
		derived, ok := l.AsOf()
		if !ok {
			return nil, ErrEmptyLedger
		}
		asOf = derived
	}

	prices := NewPriceHistory(l)
	shares := NewSharesHistory(l)
	fundYearly := BuildFundYearlyReturns(prices, funds, asOf)
	fundSummaries := BuildFundSummaries(l, shares, prices, funds, asOf)

	return &Analytics{
		AsOf:            asOf,
		Prices:          prices,
		Shares:          shares,
		FundYearly:      fundYearly,
		PortfolioYearly: BuildPortfolioYearlyReturns(fundYearly, shares),
		FundSummaries:   fundSummaries,
		Portfolio:       BuildPortfolioSummary(l, fundSummaries, asOf),
	}, nil
}

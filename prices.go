package analyzer

import (
	"iter"
	"math"
	"sort"

	"github.com/alimnaqvi/etf-analyzer/date"
)

// PricePoint is one implied unit price observation, reconstructed from a
// transaction that moved shares for a known cash amount.
type PricePoint struct {
	Date date.Date
	ISIN string
	// Type is the export's raw transaction type the price was derived from.
	Type      string
	UnitPrice float64
}

// PriceHistory is the sparse, event-driven unit-price series of every fund
// in the ledger. It is not a daily series: prices exist only on days the
// account transacted.
type PriceHistory struct {
	points []PricePoint
	series map[string]*date.History[float64]
}

// NewPriceHistory reconstructs per-fund unit prices from the ledger.
//
// Only transactions with a non-empty ISIN, a positive share count and a
// nonzero cash amount carry price information: price = |amount| / shares.
// Position-decreasing types (sells, transfers out) are excluded: with a
// small event-driven sample, bid/ask spread on disposals would dominate the
// series. That is a policy choice, not a data constraint.
func NewPriceHistory(l *Ledger) *PriceHistory {
	h := &PriceHistory{series: make(map[string]*date.History[float64])}
	for tx := range l.FundTransactions() {
		if !tx.Shares.IsPositive() || tx.Amount.IsZero() || tx.Type.Direction() < 0 {
			continue
		}
		price := tx.Amount.Abs().DivShares(tx.Shares).AsFloat()
		h.points = append(h.points, PricePoint{
			Date:      tx.Date,
			ISIN:      tx.ISIN,
			Type:      tx.RawType,
			UnitPrice: price,
		})
		serie, ok := h.series[tx.ISIN]
		if !ok {
			serie = new(date.History[float64])
			h.series[tx.ISIN] = serie
		}
		serie.Append(tx.Date, price)
	}
	sort.SliceStable(h.points, func(i, j int) bool {
		if h.points[i].ISIN != h.points[j].ISIN {
			return h.points[i].ISIN < h.points[j].ISIN
		}
		return h.points[i].Date.Before(h.points[j].Date)
	})
	return h
}

// Len returns the number of price points.
func (h *PriceHistory) Len() int { return len(h.points) }

// Points returns an iterator over all price points, sorted by (ISIN, date).
func (h *PriceHistory) Points() iter.Seq[PricePoint] {
	return func(yield func(PricePoint) bool) {
		for _, p := range h.points {
			if !yield(p) {
				return
			}
		}
	}
}

// Funds returns the sorted fund identifiers with at least one price point.
func (h *PriceHistory) Funds() []string {
	funds := make([]string, 0, len(h.series))
	for isin := range h.series {
		funds = append(funds, isin)
	}
	sort.Strings(funds)
	return funds
}

// PriceAsOf returns the latest known price of a fund at or before a date,
// or NaN when the fund has no price point at or before it.
func (h *PriceHistory) PriceAsOf(isin string, day date.Date) float64 {
	serie, ok := h.series[isin]
	if !ok {
		return math.NaN()
	}
	price, ok := serie.ValueAsOf(day)
	if !ok {
		return math.NaN()
	}
	return price
}

// OpeningPriceForYear resolves a fund's opening price for a calendar year:
// the latest known price at or before January 1, falling back to the
// earliest price within the year itself (a fund first purchased mid-year
// opens at its first in-year price). NaN when neither exists.
func (h *PriceHistory) OpeningPriceForYear(isin string, year int) float64 {
	start := date.New(year, 1, 1)
	if price := h.PriceAsOf(isin, start); !math.IsNaN(price) {
		return price
	}
	serie, ok := h.series[isin]
	if !ok {
		return math.NaN()
	}
	for day, price := range serie.Values() {
		if day.Year() == year {
			return price
		}
		if day.Year() > year {
			break
		}
	}
	return math.NaN()
}

// LatestPrice returns a fund's most recent known price, or NaN when the fund
// has no price point at all.
func (h *PriceHistory) LatestPrice(isin string) float64 {
	serie, ok := h.series[isin]
	if !ok {
		return math.NaN()
	}
	_, price, ok := serie.Latest()
	if !ok {
		return math.NaN()
	}
	return price
}

// MinYear returns the earliest year with a price point, and false when the
// history is empty.
func (h *PriceHistory) MinYear() (int, bool) {
	year := 0
	found := false
	for _, serie := range h.series {
		if day, _, ok := serie.First(); ok {
			if !found || day.Year() < year {
				year = day.Year()
				found = true
			}
		}
	}
	return year, found
}

package analyzer

import (
	"iter"
	"sort"

	"github.com/alimnaqvi/etf-analyzer/date"
)

// SharesSnapshot is one day's position change for a fund: the signed share
// delta of that day and the resulting running total.
type SharesSnapshot struct {
	Date             date.Date
	ISIN             string
	SignedShares     float64
	CumulativeShares float64
}

// SharesHistory tracks cumulative share holdings per fund over time, derived
// from the signed share deltas of the ledger.
type SharesHistory struct {
	deltas     map[string]*date.History[float64]
	cumulative map[string]*date.History[float64]
}

// NewSharesHistory sums each fund's signed share deltas per day and derives
// the per-fund running totals, ordered by date.
func NewSharesHistory(l *Ledger) *SharesHistory {
	h := &SharesHistory{
		deltas:     make(map[string]*date.History[float64]),
		cumulative: make(map[string]*date.History[float64]),
	}
	for tx := range l.FundTransactions() {
		serie, ok := h.deltas[tx.ISIN]
		if !ok {
			serie = new(date.History[float64])
			h.deltas[tx.ISIN] = serie
		}
		serie.AppendAdd(tx.Date, tx.SignedShares().AsFloat())
	}
	for isin, serie := range h.deltas {
		cumulative := new(date.History[float64])
		for day, delta := range serie.Values() {
			cumulative.Append(day, delta)
		}
		h.cumulative[isin] = cumulative.Accumulate()
	}
	return h
}

// SharesAsOf returns the shares held by a fund at or before a date. A fund
// with no snapshot at or before the date holds zero: not yet purchased is
// equivalent to an empty position, not an error.
func (h *SharesHistory) SharesAsOf(isin string, day date.Date) float64 {
	serie, ok := h.cumulative[isin]
	if !ok {
		return 0
	}
	shares, ok := serie.ValueAsOf(day)
	if !ok {
		return 0
	}
	return shares
}

// CurrentShares returns a fund's latest running total, or 0 when the fund
// never appears in the ledger.
func (h *SharesHistory) CurrentShares(isin string) float64 {
	serie, ok := h.cumulative[isin]
	if !ok {
		return 0
	}
	_, shares, ok := serie.Latest()
	if !ok {
		return 0
	}
	return shares
}

// Funds returns the sorted fund identifiers with at least one snapshot.
func (h *SharesHistory) Funds() []string {
	funds := make([]string, 0, len(h.deltas))
	for isin := range h.deltas {
		funds = append(funds, isin)
	}
	sort.Strings(funds)
	return funds
}

// Snapshots returns an iterator over every (date, fund) snapshot, sorted by
// (ISIN, date).
func (h *SharesHistory) Snapshots() iter.Seq[SharesSnapshot] {
	return func(yield func(SharesSnapshot) bool) {
		for _, isin := range h.Funds() {
			cumulative := h.cumulative[isin]
			for day, delta := range h.deltas[isin].Values() {
				total, _ := cumulative.Get(day)
				if !yield(SharesSnapshot{Date: day, ISIN: isin, SignedShares: delta, CumulativeShares: total}) {
					return
				}
			}
		}
	}
}

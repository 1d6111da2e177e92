package analyzer

import (
	"math"

	"github.com/alimnaqvi/etf-analyzer/date"
)

// CashFlow is one dated signed cash flow: negative for money leaving cash to
// buy, positive for money returning from sells or the terminal
// mark-to-market value.
type CashFlow struct {
	Date   date.Date
	Amount float64
}

// Bisection budget for the XIRR solver. These values are part of the
// contract: the defined-rate domain is [-0.9999, 10.0], widened by doubling
// the upper bound up to 10 times before giving up.
const (
	xirrRateLow     = -0.9999
	xirrRateHigh    = 10.0
	xirrBracketings = 10
	xirrIterations  = 200
	xirrTolerance   = 1e-8
)

// XIRR computes the annualized internal rate of return of an ordered cash
// flow sequence: the rate r such that Σ flow_i / (1+r)^years_i = 0, with
// years_i counted in days/365.25 since the first flow.
//
// It returns NaN when no rate is defined: fewer than two flows, flows all of
// one sign, or no sign change found within the bracketing budget. Bisection
// is used over Newton-Raphson deliberately; it cannot diverge on extreme
// flow distributions.
func XIRR(flows []CashFlow) float64 {
	if len(flows) < 2 {
		return math.NaN()
	}

	allNonNegative, allNonPositive := true, true
	for _, f := range flows {
		if f.Amount < 0 {
			allNonNegative = false
		}
		if f.Amount > 0 {
			allNonPositive = false
		}
	}
	if allNonNegative || allNonPositive {
		return math.NaN()
	}

	t0 := flows[0].Date
	years := make([]float64, len(flows))
	for i, f := range flows {
		years[i] = float64(f.Date.Sub(t0)) / 365.25
	}

	npv := func(rate float64) float64 {
		sum := 0.0
		for i, f := range flows {
			sum += f.Amount / math.Pow(1.0+rate, years[i])
		}
		return sum
	}

	low, high := xirrRateLow, xirrRateHigh
	fLow, fHigh := npv(low), npv(high)

	bracketed := false
	for range xirrBracketings {
		if fLow*fHigh <= 0 {
			bracketed = true
			break
		}
		high *= 2
		fHigh = npv(high)
	}
	if !bracketed {
		return math.NaN()
	}

	for range xirrIterations {
		mid := (low + high) / 2
		fMid := npv(mid)

		if math.Abs(fMid) < xirrTolerance {
			return mid
		}
		if fLow*fMid <= 0 {
			high = mid
		} else {
			low, fLow = mid, fMid
		}
	}
	return (low + high) / 2
}

// TerminalFlows appends the synthetic terminal cash flow (+currentValue at
// the as-of date) when the current value is positive, treating the open
// position as if liquidated. Without it the solver has no meaningful answer
// for a position that never sold.
func TerminalFlows(flows []CashFlow, asOf date.Date, currentValue float64) []CashFlow {
	if currentValue > 0 {
		flows = append(flows, CashFlow{Date: asOf, Amount: currentValue})
	}
	return flows
}

// MoneyWeightedReturn solves the XIRR of the flows (with the terminal value
// appended) and converts it to a percentage. NaN propagates as the
// not-available sentinel.
func MoneyWeightedReturn(flows []CashFlow, asOf date.Date, currentValue float64) Percent {
	rate := XIRR(TerminalFlows(flows, asOf, currentValue))
	return Percent(rate * 100)
}

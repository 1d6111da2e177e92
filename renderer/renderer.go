// Package renderer turns analytics results into markdown reports for the
// terminal.
package renderer

import (
	"fmt"
	"math"

	"github.com/alimnaqvi/etf-analyzer"
)

// formatValue renders a monetary float with the reporting currency symbol.
// NaN renders as "n/a" so a missing price does not leak into a report.
func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return analyzer.M(v).String()
}

// formatPrice renders a unit price with enough digits for low-priced funds.
func formatPrice(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%.4f", v)
}

func formatShares(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

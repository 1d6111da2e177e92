package analyzer

import (
	"fmt"
	"math"
)

// Percent is a percentage value (17.5 means 17.5%). NaN is the
// "not available" sentinel, distinct from zero.
type Percent float64

// IsNA reports whether the percentage is the not-available sentinel.
func (p Percent) IsNA() bool { return math.IsNaN(float64(p)) }

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	if p.IsNA() || q.IsNA() {
		return p.IsNA() && q.IsNA()
	}
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	if p.IsNA() {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	if p.IsNA() {
		return "n/a"
	}
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}

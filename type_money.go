package analyzer

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in the account's currency.
//
// The ledger is single-currency, so Money only carries an amount; the
// currency is a package-level setting used for display formatting.
type Money struct {
	value decimal.Decimal
}

// reportingCurrency is the ISO code used to format Money for display.
// Scalable Capital accounts settle in EUR.
const reportingCurrency = "EUR"

// M creates a Money from any numeric value.
func M[T float32 | float64 | int | int64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

func (m Money) Equal(n Money) bool         { return m.value.Equal(n.value) }
func (m Money) IsZero() bool               { return m.value.IsZero() }
func (m Money) IsPositive() bool           { return m.value.IsPositive() }
func (m Money) IsNegative() bool           { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool      { return m.value.LessThan(n.value) }
func (m Money) Neg() Money                 { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money          { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money          { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(q Quantity) Money       { return Money{value: m.value.Mul(q.value)} }
func (m Money) Abs() Money                 { return Money{value: m.value.Abs()} }
func (m Money) AsFloat() float64           { return m.value.InexactFloat64() }
func (m Money) Decimal() decimal.Decimal   { return m.value }
func (m Money) DivShares(q Quantity) Money { return Money{value: m.value.Div(q.value)} }

// String formats the amount with its currency symbol, e.g. "€1,234.56".
func (m Money) String() string {
	cur := *money.New(0, reportingCurrency).Currency()
	dec := m.value.Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.Round(0).IntPart())
}

// SignedString is like String but prefixes positive amounts with "+"
// and renders zero as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

package analyzer

import (
	"strings"

	"github.com/alimnaqvi/etf-analyzer/date"
)

// TxType is a typed string for the transaction event kind, as the broker
// exports it.
type TxType string

// Transaction types found in the export. Anything else (dividends, fees,
// interest) is TxOther: it still carries cash but never moves shares.
const (
	TxBuy         TxType = "buy"
	TxSell        TxType = "sell"
	TxSavingsPlan TxType = "savings plan"
	TxTransferIn  TxType = "transfer in"
	TxTransferOut TxType = "transfer out"
	TxOther       TxType = "other"
)

// ParseTxType normalizes a raw type cell into a TxType. Separator and case
// variations ("Savings-Plan", "TRANSFER IN") map to the same type.
func ParseTxType(s string) TxType {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.ReplaceAll(normalized, "-", " ")
	normalized = strings.ReplaceAll(normalized, "_", " ")
	switch TxType(normalized) {
	case TxBuy, TxSell, TxSavingsPlan, TxTransferIn, TxTransferOut:
		return TxType(normalized)
	default:
		return TxOther
	}
}

// Direction returns the position direction signal of the type:
// +1 for position-increasing types, -1 for position-decreasing types,
// 0 otherwise. It signs share counts, never cash amounts.
func (t TxType) Direction() int {
	switch t {
	case TxBuy, TxSavingsPlan, TxTransferIn:
		return 1
	case TxSell, TxTransferOut:
		return -1
	default:
		return 0
	}
}

// settledStatus is the only status that participates in analytics.
const settledStatus = "settled"

// Transaction is one normalized row of the broker's transaction export.
type Transaction struct {
	Date   date.Date
	Status string
	Type   TxType
	// RawType preserves the export's type cell for the price history output.
	RawType string
	Name    string
	// ISIN identifies the fund; empty for cash-only events (deposits, fees).
	ISIN string
	// Shares is the unsigned share count of the event; 0 when not applicable.
	Shares Quantity
	// Amount is the signed cash amount: negative is an outflow from cash
	// (money invested), positive an inflow back to cash.
	Amount Money
}

// IsSettled reports whether the transaction has settled (case-insensitive).
func (t Transaction) IsSettled() bool {
	return strings.EqualFold(strings.TrimSpace(t.Status), settledStatus)
}

// SignedShares is the share delta of the transaction: Shares signed by the
// type's position direction signal.
func (t Transaction) SignedShares() Quantity {
	switch t.Type.Direction() {
	case 1:
		return t.Shares
	case -1:
		return t.Shares.Neg()
	default:
		return Q(0)
	}
}

package analyzer

import (
	"encoding/csv"
	"fmt"
	"io"
	"iter"
	"log"
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alimnaqvi/etf-analyzer/date"
)

// ledgerColumns is the required column set of a transactions export.
var ledgerColumns = []string{"Date", "Status", "Type", "Name", "ISIN", "Shares", "Amount"}

// Ledger is the normalized transaction history of the account.
//
// In a Ledger transactions are settled only and always in chronological order.
type Ledger struct {
	transactions []Transaction
}

// NewLedger creates a ledger from already-normalized transactions, sorting
// them by date. It is mostly useful in tests; file inputs go through
// DecodeLedger.
func NewLedger(txs ...Transaction) *Ledger {
	l := &Ledger{transactions: slices.Clone(txs)}
	l.stableSort()
	return l
}

// DecodeLedger reads a raw transactions CSV and normalizes it.
//
// It fails fast when required columns are missing, naming them. Per-row
// issues degrade instead of aborting: rows with unparseable dates are
// dropped, unparseable share/amount cells become 0, and only settled
// transactions are kept. The result is sorted ascending by date.
func DecodeLedger(r io.Reader) (*Ledger, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read transactions header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range ledgerColumns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, fmt.Errorf("transactions file is missing required columns: %v", missing)
	}

	l := NewLedger()
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("cannot read transactions row: %w", err)
		}

		tx := Transaction{
			Status:  record[col["Status"]],
			RawType: strings.TrimSpace(record[col["Type"]]),
			Type:    ParseTxType(record[col["Type"]]),
			Name:    strings.TrimSpace(record[col["Name"]]),
			ISIN:    strings.TrimSpace(record[col["ISIN"]]),
			Shares:  Q(coerceDecimal(record[col["Shares"]])),
			Amount:  M(coerceDecimal(record[col["Amount"]])),
		}
		if !tx.IsSettled() {
			continue
		}
		day, err := date.ParseTime(strings.TrimSpace(record[col["Date"]]))
		if err != nil {
			// A malformed date makes the row unusable; drop it rather than abort.
			log.Printf("warning: dropping transaction row with unparseable date %q", record[col["Date"]])
			continue
		}
		tx.Date = day
		l.transactions = append(l.transactions, tx)
	}
	l.stableSort()
	return l, nil
}

// coerceDecimal parses a numeric cell, defaulting to zero when unparseable.
// Defaulting keeps the row: a missing share count or amount must not drop a
// settled event from the ledger.
func coerceDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// stableSort sorts the ledger by transaction date. The sort is stable, meaning
// transactions on the same day maintain their original relative order.
func (l *Ledger) stableSort() {
	sort.SliceStable(l.transactions, func(i, j int) bool {
		return l.transactions[i].Date.Before(l.transactions[j].Date)
	})
}

// Len returns the number of settled transactions in the ledger.
func (l *Ledger) Len() int { return len(l.transactions) }

// Transactions returns an iterator over all transactions in chronological order.
func (l *Ledger) Transactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if !yield(tx) {
				return
			}
		}
	}
}

// FundTransactions returns an iterator over transactions that reference a
// fund. Cash-only events (empty ISIN) are skipped.
func (l *Ledger) FundTransactions() iter.Seq[Transaction] {
	return func(yield func(Transaction) bool) {
		for _, tx := range l.transactions {
			if tx.ISIN == "" {
				continue
			}
			if !yield(tx) {
				return
			}
		}
	}
}

// Funds returns the sorted set of fund identifiers present in the ledger.
func (l *Ledger) Funds() []string {
	seen := make(map[string]struct{})
	for tx := range l.FundTransactions() {
		seen[tx.ISIN] = struct{}{}
	}
	funds := make([]string, 0, len(seen))
	for isin := range seen {
		funds = append(funds, isin)
	}
	sort.Strings(funds)
	return funds
}

// AsOf returns the reference date of the ledger: the calendar day of the
// newest settled transaction. "Current" values and terminal IRR flows are
// computed against it. It returns false when the ledger is empty.
func (l *Ledger) AsOf() (date.Date, bool) {
	if len(l.transactions) == 0 {
		return date.Date{}, false
	}
	return l.transactions[len(l.transactions)-1].Date, true
}

// OldestTransactionDate returns the date of the earliest transaction,
// or the zero date when the ledger is empty.
func (l *Ledger) OldestTransactionDate() date.Date {
	if len(l.transactions) == 0 {
		return date.Date{}
	}
	return l.transactions[0].Date
}

// NetCashFlow sums the signed cash amounts of one fund's transactions.
// Net buyers get a negative result (cash flowed out of the account).
func (l *Ledger) NetCashFlow(isin string) Money {
	sum := M(0)
	for tx := range l.FundTransactions() {
		if tx.ISIN == isin {
			sum = sum.Add(tx.Amount)
		}
	}
	return sum
}

// CashFlows returns one fund's dated cash flows in chronological order,
// skipping zero amounts (they carry no information for the IRR solver).
func (l *Ledger) CashFlows(isin string) []CashFlow {
	var flows []CashFlow
	for tx := range l.FundTransactions() {
		if tx.ISIN == isin && !tx.Amount.IsZero() {
			flows = append(flows, CashFlow{Date: tx.Date, Amount: tx.Amount.AsFloat()})
		}
	}
	return flows
}

// PooledCashFlows groups all fund cash flows by date and sums each day,
// producing the portfolio-level flow sequence. The portfolio IRR is solved
// over these pooled flows, never composed from fund-level rates.
func (l *Ledger) PooledCashFlows() []CashFlow {
	byDay := make(map[date.Date]decimal.Decimal)
	var days []date.Date
	for tx := range l.FundTransactions() {
		if tx.Amount.IsZero() {
			continue
		}
		if _, ok := byDay[tx.Date]; !ok {
			days = append(days, tx.Date)
		}
		byDay[tx.Date] = byDay[tx.Date].Add(tx.Amount.Decimal())
	}
	slices.SortFunc(days, date.Date.Compare)
	flows := make([]CashFlow, 0, len(days))
	for _, day := range days {
		flows = append(flows, CashFlow{Date: day, Amount: byDay[day].InexactFloat64()})
	}
	return flows
}

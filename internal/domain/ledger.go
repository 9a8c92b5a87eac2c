package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single cash-book record. Amount is always non-negative;
// direction comes from Kind.
type Transaction struct {
	Date        time.Time       `yaml:"date" json:"date"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Kind        TransactionKind `yaml:"kind" json:"kind"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Category    string          `yaml:"category,omitempty" json:"category,omitempty"`
}

// Signed returns the amount with outflows negated.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == Outflow {
		return t.Amount.Neg()
	}
	return t.Amount
}

// LedgerEntry is a tagged transaction inside a built ledger.
type LedgerEntry struct {
	Transaction `yaml:",inline"`

	// Sequence is the position in the concatenated input (inflows first).
	Sequence int `yaml:"sequence" json:"sequence"`
	// RunningBalance is the balance after this entry in chronological order.
	RunningBalance decimal.Decimal `yaml:"running_balance" json:"running_balance"`
}

// LedgerResult is the Livro Caixa view: ordered entries plus totals.
type LedgerResult struct {
	Entries        []LedgerEntry   `yaml:"entries" json:"entries"`
	TotalInflow    decimal.Decimal `yaml:"total_inflow" json:"total_inflow"`
	TotalOutflow   decimal.Decimal `yaml:"total_outflow" json:"total_outflow"`
	ClosingBalance decimal.Decimal `yaml:"closing_balance" json:"closing_balance"`
	Order          SortOrder       `yaml:"order" json:"order"`
}

// Sorted returns a copy of the ledger with entries stably re-sorted by date.
// Entries sharing a date keep their current relative order, so sorting
// asc, desc and asc again restores the original sequence. Totals and the
// per-entry running balances are not touched.
func (r LedgerResult) Sorted(order SortOrder) LedgerResult {
	out := r
	out.Entries = make([]LedgerEntry, len(r.Entries))
	copy(out.Entries, r.Entries)

	if order == Descending {
		sort.SliceStable(out.Entries, func(i, j int) bool {
			return out.Entries[i].Date.After(out.Entries[j].Date)
		})
		out.Order = Descending
		return out
	}
	sort.SliceStable(out.Entries, func(i, j int) bool {
		return out.Entries[i].Date.Before(out.Entries[j].Date)
	})
	out.Order = Ascending
	return out
}

// Between returns the entries dated within [from, to], in the ledger's
// current order. A zero bound leaves that side open.
func (r LedgerResult) Between(from, to time.Time) []LedgerEntry {
	entries := make([]LedgerEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		if !from.IsZero() && e.Date.Before(from) {
			continue
		}
		if !to.IsZero() && e.Date.After(to) {
			continue
		}
		entries = append(entries, e)
	}
	return entries
}

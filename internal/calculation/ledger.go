package calculation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// BuildLedger merges inflows and outflows into a Livro Caixa view.
//
// Entries are tagged with their kind, concatenated inflows first, and
// stable-sorted ascending by date, so same-day records keep that input
// order. Running balances follow the chronological order.
func BuildLedger(inflows, outflows []domain.Transaction) (domain.LedgerResult, error) {
	entries := make([]domain.LedgerEntry, 0, len(inflows)+len(outflows))
	totalIn, totalOut := decimal.Zero, decimal.Zero

	appendAll := func(field string, txs []domain.Transaction, kind domain.TransactionKind) error {
		for i, tx := range txs {
			name := fmt.Sprintf("%s[%d]", field, i)
			if tx.Date.IsZero() {
				return domain.NewInvalidInput(name+".date", "is required")
			}
			if tx.Amount.IsNegative() {
				return domain.NewInvalidInput(name+".amount", "cannot be negative, got %s", tx.Amount.String())
			}
			tx.Kind = kind
			entries = append(entries, domain.LedgerEntry{Transaction: tx, Sequence: len(entries)})
			if kind == domain.Inflow {
				totalIn = totalIn.Add(tx.Amount)
			} else {
				totalOut = totalOut.Add(tx.Amount)
			}
		}
		return nil
	}
	if err := appendAll("inflows", inflows, domain.Inflow); err != nil {
		return domain.LedgerResult{}, err
	}
	if err := appendAll("outflows", outflows, domain.Outflow); err != nil {
		return domain.LedgerResult{}, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})

	balance := decimal.Zero
	for i := range entries {
		balance = balance.Add(entries[i].Signed())
		entries[i].RunningBalance = balance
	}

	return domain.LedgerResult{
		Entries:        entries,
		TotalInflow:    totalIn,
		TotalOutflow:   totalOut,
		ClosingBalance: totalIn.Sub(totalOut),
		Order:          domain.Ascending,
	}, nil
}

// ParseTransaction builds a Transaction from user-typed values.
func ParseTransaction(date, amount, kind, description, category string) (domain.Transaction, error) {
	d, err := dateutil.ParseDate(strings.TrimSpace(date))
	if err != nil {
		return domain.Transaction{}, domain.NewInvalidInput("date", "%v", err)
	}
	amt, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return domain.Transaction{}, domain.NewInvalidInput("amount", "%q is not a number", amount)
	}
	if amt.IsNegative() {
		return domain.Transaction{}, domain.NewInvalidInput("amount", "cannot be negative, got %s", amt.String())
	}
	k, err := domain.ParseTransactionKind(kind)
	if err != nil {
		return domain.Transaction{}, err
	}
	return domain.Transaction{
		Date:        d,
		Amount:      amt,
		Kind:        k,
		Description: description,
		Category:    category,
	}, nil
}

// TransactionsFromInputs converts workbook records of one kind. Field is the
// workbook section name used in error messages.
func TransactionsFromInputs(field string, inputs []domain.TransactionInput, kind domain.TransactionKind) ([]domain.Transaction, error) {
	txs := make([]domain.Transaction, 0, len(inputs))
	for i, in := range inputs {
		d, err := dateutil.ParseDate(in.Date)
		if err != nil {
			return nil, domain.NewInvalidInput(fmt.Sprintf("%s[%d].date", field, i), "%v", err)
		}
		txs = append(txs, domain.Transaction{
			Date:        d,
			Amount:      in.Amount,
			Kind:        kind,
			Description: in.Description,
			Category:    in.Category,
		})
	}
	return txs, nil
}

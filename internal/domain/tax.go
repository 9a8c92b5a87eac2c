package domain

import (
	"time"

	"github.com/contabilizei/fiscal-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// TaxBracket is one band of a progressive table using the "parcela a deduzir"
// formulation: tax = base*Rate - SubtractAmount. A nil UpperBound means unbounded.
type TaxBracket struct {
	UpperBound     *decimal.Decimal `yaml:"upper_bound,omitempty" json:"upper_bound,omitempty"`
	Rate           decimal.Decimal  `yaml:"rate" json:"rate"`
	SubtractAmount decimal.Decimal  `yaml:"subtract_amount" json:"subtract_amount"`
}

// Unbounded reports whether the bracket extends to infinity.
func (b TaxBracket) Unbounded() bool { return b.UpperBound == nil }

// Covers reports whether amount falls at or below the bracket's upper bound.
func (b TaxBracket) Covers(amount decimal.Decimal) bool {
	return b.UpperBound == nil || b.UpperBound.GreaterThanOrEqual(amount)
}

// BracketShare is the slice of the taxable base that falls into one bracket.
type BracketShare struct {
	BracketIndex    int             `yaml:"bracket_index" json:"bracket_index"`
	AmountInBracket decimal.Decimal `yaml:"amount_in_bracket" json:"amount_in_bracket"`
	Rate            decimal.Decimal `yaml:"rate" json:"rate"`
	TaxInBracket    decimal.Decimal `yaml:"tax_in_bracket" json:"tax_in_bracket"`
}

// BracketComputationResult is the outcome of a progressive income tax computation.
type BracketComputationResult struct {
	TaxableIncome decimal.Decimal `yaml:"taxable_income" json:"taxable_income"`
	ExemptIncome  decimal.Decimal `yaml:"exempt_income" json:"exempt_income"`
	Deductions    decimal.Decimal `yaml:"deductions" json:"deductions"`
	TaxableBase   decimal.Decimal `yaml:"taxable_base" json:"taxable_base"`
	TaxDue        decimal.Decimal `yaml:"tax_due" json:"tax_due"`
	EffectiveRate decimal.Decimal `yaml:"effective_rate" json:"effective_rate"`
	// BracketIndex is the zero-based index of the bracket the base falls in.
	BracketIndex int            `yaml:"bracket_index" json:"bracket_index"`
	Breakdown    []BracketShare `yaml:"breakdown" json:"breakdown"`
}

// BreakdownTotal sums TaxInBracket over the breakdown.
func (r BracketComputationResult) BreakdownTotal() decimal.Decimal {
	total := decimal.Zero
	for _, s := range r.Breakdown {
		total = total.Add(s.TaxInBracket)
	}
	return total
}

// RevenueBand is one step of a flat-rate table; the first band whose
// UpperBound is >= revenue applies. A nil UpperBound means unbounded.
type RevenueBand struct {
	UpperBound *decimal.Decimal `yaml:"upper_bound,omitempty" json:"upper_bound,omitempty"`
	Rate       decimal.Decimal  `yaml:"rate" json:"rate"`
}

// Covers reports whether revenue falls at or below the band's upper bound.
func (b RevenueBand) Covers(revenue decimal.Decimal) bool {
	return b.UpperBound == nil || b.UpperBound.GreaterThanOrEqual(revenue)
}

// FlatTaxDocument is a generated DAS guide for one apuração period.
type FlatTaxDocument struct {
	TaxpayerID    string             `yaml:"taxpayer_id" json:"taxpayer_id"`
	Period        dateutil.YearMonth `yaml:"period" json:"period"`
	Revenue       decimal.Decimal    `yaml:"revenue" json:"revenue"`
	Rate          decimal.Decimal    `yaml:"rate" json:"rate"`
	AmountDue     decimal.Decimal    `yaml:"amount_due" json:"amount_due"`
	DueDate       time.Time          `yaml:"due_date" json:"due_date"`
	ReferenceCode string             `yaml:"reference_code" json:"reference_code"`
	DocumentURL   string             `yaml:"document_url,omitempty" json:"document_url,omitempty"`
}

package domain

import "github.com/shopspring/decimal"

// Workbook is the YAML document a client's accountant fills in: one company,
// its cash-book records, and the optional inputs for each calculator.
type Workbook struct {
	Company    string             `yaml:"company" json:"company"`
	TaxpayerID string             `yaml:"taxpayer_id" json:"taxpayer_id"`
	Profile    FiscalProfile      `yaml:"profile" json:"profile"`
	Inflows    []TransactionInput `yaml:"inflows,omitempty" json:"inflows,omitempty"`
	Outflows   []TransactionInput `yaml:"outflows,omitempty" json:"outflows,omitempty"`
	Forecast   *Forecast          `yaml:"forecast,omitempty" json:"forecast,omitempty"`
	IncomeTax  *IncomeTaxInput    `yaml:"income_tax,omitempty" json:"income_tax,omitempty"`
	DAS        *DASInput          `yaml:"das,omitempty" json:"das,omitempty"`
}

// TransactionInput is a cash-book record as typed by a user; the date is
// kept as text so malformed values surface as InvalidInputError.
type TransactionInput struct {
	Date        string          `yaml:"date" json:"date"`
	Amount      decimal.Decimal `yaml:"amount" json:"amount"`
	Description string          `yaml:"description,omitempty" json:"description,omitempty"`
	Category    string          `yaml:"category,omitempty" json:"category,omitempty"`
}

// IncomeTaxInput are the monthly IRPF figures of the company's owner.
type IncomeTaxInput struct {
	TaxableIncome decimal.Decimal `yaml:"taxable_income" json:"taxable_income"`
	ExemptIncome  decimal.Decimal `yaml:"exempt_income" json:"exempt_income"`
	Deductions    decimal.Decimal `yaml:"deductions" json:"deductions"`
}

// DASInput requests a DAS guide for one period.
type DASInput struct {
	Period  string          `yaml:"period" json:"period"`
	Revenue decimal.Decimal `yaml:"revenue" json:"revenue"`
}

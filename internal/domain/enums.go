package domain

import "strings"

// TransactionKind tags a cash-book record as money in or money out.
type TransactionKind string

const (
	Inflow  TransactionKind = "inflow"
	Outflow TransactionKind = "outflow"
)

// ParseTransactionKind accepts the English names and the pt-BR "entrada"/"saida".
func ParseTransactionKind(s string) (TransactionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inflow", "entrada", "receita":
		return Inflow, nil
	case "outflow", "saida", "saída", "despesa":
		return Outflow, nil
	default:
		return "", NewInvalidInput("kind", "unrecognized transaction kind %q", s)
	}
}

// TaxRegime is one of the three Brazilian corporate regimes.
type TaxRegime string

const (
	SimplesNacional TaxRegime = "simples_nacional"
	LucroPresumido  TaxRegime = "lucro_presumido"
	LucroReal       TaxRegime = "lucro_real"
)

// Regimes lists every supported regime in a stable order.
var Regimes = []TaxRegime{SimplesNacional, LucroPresumido, LucroReal}

var regimeAliases = map[string]TaxRegime{
	"simples_nacional": SimplesNacional,
	"simples":          SimplesNacional,
	"simplified":       SimplesNacional,
	"lucro_presumido":  LucroPresumido,
	"presumido":        LucroPresumido,
	"presumed_profit":  LucroPresumido,
	"lucro_real":       LucroReal,
	"real":             LucroReal,
	"real_profit":      LucroReal,
}

// ParseTaxRegime resolves a regime name or alias.
func ParseTaxRegime(s string) (TaxRegime, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	if r, ok := regimeAliases[key]; ok {
		return r, nil
	}
	return "", NewInvalidInput("tax_regime", "unrecognized tax regime %q", s)
}

// Valid reports whether r is one of the known regimes.
func (r TaxRegime) Valid() bool {
	switch r {
	case SimplesNacional, LucroPresumido, LucroReal:
		return true
	}
	return false
}

// DisplayName is the label used in reports.
func (r TaxRegime) DisplayName() string {
	switch r {
	case SimplesNacional:
		return "Simples Nacional"
	case LucroPresumido:
		return "Lucro Presumido"
	case LucroReal:
		return "Lucro Real"
	}
	return string(r)
}

// RiskLevel orders fiscal risk classifications; higher values are more severe.
type RiskLevel int

const (
	RiskLow RiskLevel = iota
	RiskMedium
	RiskHigh
)

func (l RiskLevel) String() string {
	switch l {
	case RiskLow:
		return "low"
	case RiskMedium:
		return "medium"
	case RiskHigh:
		return "high"
	}
	return "unknown"
}

// Raise returns the more severe of l and other; severity never goes down.
func (l RiskLevel) Raise(other RiskLevel) RiskLevel {
	if other > l {
		return other
	}
	return l
}

// MarshalText implements encoding.TextMarshaler so json/yaml show "high" not 2.
func (l RiskLevel) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText accepts the names written by MarshalText.
func (l *RiskLevel) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "low":
		*l = RiskLow
	case "medium":
		*l = RiskMedium
	case "high":
		*l = RiskHigh
	default:
		return NewInvalidInput("risk_level", "unrecognized risk level %q", string(text))
	}
	return nil
}

// SortOrder selects the chronological direction of a ledger view.
type SortOrder string

const (
	Ascending  SortOrder = "asc"
	Descending SortOrder = "desc"
)

// ParseSortOrder accepts "asc"/"desc" (and their long forms).
func ParseSortOrder(s string) (SortOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	default:
		return "", NewInvalidInput("order", "unrecognized sort order %q", s)
	}
}

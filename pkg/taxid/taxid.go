// Package taxid validates and formats Brazilian taxpayer identifiers (CPF and CNPJ)
// using the public mod-11 check-digit algorithms.
package taxid

import "strings"

// Kind identifies which document an identifier looks like.
type Kind string

const (
	KindCPF     Kind = "cpf"
	KindCNPJ    Kind = "cnpj"
	KindUnknown Kind = "unknown"
)

const (
	cpfLength  = 11
	cnpjLength = 14
)

var (
	cnpjFirstWeights  = []int{5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
	cnpjSecondWeights = []int{6, 5, 4, 3, 2, 9, 8, 7, 6, 5, 4, 3, 2}
)

// Normalize strips every non-digit rune ("123.456.789-09" -> "12345678909").
func Normalize(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range id {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Detect reports whether id is a valid CPF, a valid CNPJ, or neither.
func Detect(id string) Kind {
	switch {
	case ValidateCPF(id):
		return KindCPF
	case ValidateCNPJ(id):
		return KindCNPJ
	default:
		return KindUnknown
	}
}

// ValidateCPF checks length, repeated-digit sequences and both check digits.
func ValidateCPF(id string) bool {
	digits := toDigits(Normalize(id))
	if len(digits) != cpfLength || allSame(digits) {
		return false
	}
	for pos := 9; pos <= 10; pos++ {
		sum := 0
		for i := 0; i < pos; i++ {
			sum += digits[i] * (pos + 1 - i)
		}
		if checkDigit(sum) != digits[pos] {
			return false
		}
	}
	return true
}

// ValidateCNPJ checks length, repeated-digit sequences and both check digits.
func ValidateCNPJ(id string) bool {
	digits := toDigits(Normalize(id))
	if len(digits) != cnpjLength || allSame(digits) {
		return false
	}
	if checkDigit(weightedSum(digits, cnpjFirstWeights)) != digits[12] {
		return false
	}
	return checkDigit(weightedSum(digits, cnpjSecondWeights)) == digits[13]
}

// FormatCPF renders 11 digits as "000.000.000-00"; other input is returned unchanged.
func FormatCPF(id string) string {
	d := Normalize(id)
	if len(d) != cpfLength {
		return id
	}
	return d[0:3] + "." + d[3:6] + "." + d[6:9] + "-" + d[9:11]
}

// FormatCNPJ renders 14 digits as "00.000.000/0000-00"; other input is returned unchanged.
func FormatCNPJ(id string) string {
	d := Normalize(id)
	if len(d) != cnpjLength {
		return id
	}
	return d[0:2] + "." + d[2:5] + "." + d[5:8] + "/" + d[8:12] + "-" + d[12:14]
}

// Format picks the CPF or CNPJ mask by digit count.
func Format(id string) string {
	switch len(Normalize(id)) {
	case cpfLength:
		return FormatCPF(id)
	case cnpjLength:
		return FormatCNPJ(id)
	default:
		return id
	}
}

// checkDigit maps a weighted sum to its mod-11 digit: remainders 0 and 1 yield 0.
func checkDigit(sum int) int {
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

func weightedSum(digits, weights []int) int {
	sum := 0
	for i, w := range weights {
		sum += digits[i] * w
	}
	return sum
}

func toDigits(s string) []int {
	out := make([]int, len(s))
	for i := range s {
		out[i] = int(s[i] - '0')
	}
	return out
}

func allSame(digits []int) bool {
	for _, d := range digits[1:] {
		if d != digits[0] {
			return false
		}
	}
	return true
}

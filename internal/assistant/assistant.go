// Package assistant routes free-text questions to canned fiscal guidance
// using keyword scoring.
package assistant

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Category is the topic a question was routed to.
type Category string

const (
	CategoryIncomeTax  Category = "irpf"
	CategorySimples    Category = "simples"
	CategoryLedger     Category = "livro_caixa"
	CategoryRisk       Category = "risco"
	CategoryProjection Category = "projecao"
	CategoryTaxID      Category = "documento"
	CategoryUnknown    Category = "desconhecido"
)

// categoryOrder fixes tie-breaking: earlier categories win equal scores.
var categoryOrder = []Category{
	CategoryIncomeTax,
	CategorySimples,
	CategoryLedger,
	CategoryRisk,
	CategoryProjection,
	CategoryTaxID,
}

// keywords are stored already folded (lower case, no accents).
var keywords = map[Category][]string{
	CategoryIncomeTax:  {"irpf", "imposto de renda", "declaracao", "restituicao", "deducao", "deducoes", "dependente", "aliquota", "faixa", "salario"},
	CategorySimples:    {"das", "simples", "simples nacional", "guia", "boleto", "vencimento", "mei", "faturamento mensal"},
	CategoryLedger:     {"livro caixa", "caixa", "entrada", "saida", "lancamento", "saldo", "extrato", "despesa", "receita"},
	CategoryRisk:       {"risco", "malha", "fiscalizacao", "economia", "economizar", "custo", "custos", "funcionario", "funcionarios", "folha"},
	CategoryProjection: {"projecao", "previsao", "proximos meses", "planejamento", "estimativa", "futuro", "orcamento"},
	CategoryTaxID:      {"cpf", "cnpj", "documento", "digito", "validar", "inscricao"},
}

var answers = map[Category]string{
	CategoryIncomeTax:  "O IRPF mensal usa a tabela progressiva: base = rendimentos tributáveis - deduções (rendimentos isentos ficam fora da base), imposto = base × alíquota - parcela a deduzir. Use `fiscal irpf` para calcular.",
	CategorySimples:    "O DAS do Simples Nacional aplica a alíquota da faixa de faturamento e vence no dia 20 do mês seguinte ao período de apuração. Use `fiscal das` para gerar a guia.",
	CategoryLedger:     "O livro caixa ordena entradas e saídas por data e mostra o saldo acumulado. Use `fiscal ledger` com as movimentações em YAML.",
	CategoryRisk:       "A análise de risco compara custos fixos, produtividade, folha e regime com limites de referência e sugere economias. Use `fiscal risk`.",
	CategoryProjection: "A projeção estima os impostos dos próximos meses a partir do faturamento previsto e distribui o total por mês e por tributo. Use `fiscal project`.",
	CategoryTaxID:      "CPF e CNPJ são validados pelos dígitos verificadores (módulo 11). Use `fiscal taxid <documento>`.",
	CategoryUnknown:    "Não entendi a pergunta. Pergunte sobre IRPF, DAS/Simples Nacional, livro caixa, riscos fiscais, projeções ou CPF/CNPJ.",
}

// Fold lower-cases s and strips combining accents, so "Declaração" becomes
// "declaracao".
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	return strings.ToLower(folded)
}

// tokenize splits folded text on anything that is not a letter or digit and
// rejoins with single spaces, padded so phrase matches respect word edges.
func tokenize(text string) string {
	fields := strings.FieldsFunc(Fold(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return " " + strings.Join(fields, " ") + " "
}

// Score returns the number of distinct keywords of c found in text.
func Score(text string, c Category) int {
	padded := tokenize(text)
	n := 0
	for _, kw := range keywords[c] {
		if strings.Contains(padded, " "+kw+" ") {
			n++
		}
	}
	return n
}

// Classify routes text to the best scoring category. Ties go to the category
// listed first; no match at all yields CategoryUnknown.
func Classify(text string) Category {
	best, bestScore := CategoryUnknown, 0
	for _, c := range categoryOrder {
		if s := Score(text, c); s > bestScore {
			best, bestScore = c, s
		}
	}
	return best
}

// Answer returns the canned guidance for c.
func Answer(c Category) string {
	if a, ok := answers[c]; ok {
		return a
	}
	return answers[CategoryUnknown]
}

// Categories lists the routable categories in tie-break order.
func Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}

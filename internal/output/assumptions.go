package output

import (
	"fmt"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Carga tributária estimada: Simples Nacional 6%, Lucro Presumido 11,5%, Lucro Real 15% do faturamento",
	"Projeção: faturamento previsto com acréscimo de 5%",
	"IRPF: tabela mensal progressiva 2024/2025",
	"DAS: alíquota nominal da faixa de faturamento, sem parcela a deduzir",
	"Economias estimadas são heurísticas e não substituem análise contábil",
}

// GenerateAssumptions creates the assumptions list from the loaded rule tables.
func GenerateAssumptions(rules *domain.TaxRules) []string {
	r := rules.Risk.RegimeRates
	uplift := rules.Projection.UpliftFactor.Sub(decimal.NewFromInt(1))
	return []string{
		fmt.Sprintf("Carga tributária estimada: Simples Nacional %s, Lucro Presumido %s, Lucro Real %s do faturamento",
			FormatPercentage(r[domain.SimplesNacional]), FormatPercentage(r[domain.LucroPresumido]), FormatPercentage(r[domain.LucroReal])),
		fmt.Sprintf("Projeção: faturamento previsto com acréscimo de %s", FormatPercentage(uplift)),
		fmt.Sprintf("IRPF: tabela mensal progressiva %d (%d faixas)", rules.Year, len(rules.IncomeTaxBrackets)),
		"DAS: alíquota nominal da faixa de faturamento, sem parcela a deduzir",
		"Economias estimadas são heurísticas e não substituem análise contábil",
	}
}

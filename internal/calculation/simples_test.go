package calculation

import (
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/contabilizei/fiscal-calculator/internal/config"
	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedReference() string { return "DAS-TEST0001" }

func TestComputeFlatTax(t *testing.T) {
	bands := config.DefaultSimplesBands()

	tests := []struct {
		name           string
		revenue        string
		expectedRate   string
		expectedAmount string
	}{
		{"first band", "150000", "0.04", "6000.00"},
		{"first band upper limit", "180000", "0.04", "7200.00"},
		{"just above first band", "180000.01", "0.073", "13140.00"},
		{"monthly revenue rounds half-up", "70833.33", "0.04", "2833.33"},
		{"fourth band", "1000000", "0.107", "107000.00"},
		{"unbounded band", "5000000", "0.19", "950000.00"},
		{"zero revenue", "0", "0.04", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ComputeFlatTax("11.222.333/0001-81", "2025-06", d(tt.revenue), bands,
				WithReferenceGenerator(fixedReference))
			require.NoError(t, err)

			assert.True(t, doc.Rate.Equal(d(tt.expectedRate)), "Expected rate %s, got %s", tt.expectedRate, doc.Rate)
			assert.Equal(t, tt.expectedAmount, doc.AmountDue.StringFixed(2))
			assert.Equal(t, "DAS-TEST0001", doc.ReferenceCode)
			assert.Equal(t, "11.222.333/0001-81", doc.TaxpayerID)
		})
	}
}

func TestComputeFlatTax_DueDateRollsIntoNextYear(t *testing.T) {
	doc, err := ComputeFlatTax("11222333000181", "2025-12", d("50000"), config.DefaultSimplesBands(),
		WithReferenceGenerator(fixedReference))
	require.NoError(t, err)

	assert.Equal(t, dateutil.YearMonth{Year: 2025, Month: time.December}, doc.Period)
	assert.Equal(t, time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC), doc.DueDate)
}

func TestDASDueDate(t *testing.T) {
	tests := []struct {
		period   dateutil.YearMonth
		expected time.Time
	}{
		{dateutil.YearMonth{Year: 2025, Month: time.June}, time.Date(2025, time.July, 20, 0, 0, 0, 0, time.UTC)},
		{dateutil.YearMonth{Year: 2024, Month: time.January}, time.Date(2024, time.February, 20, 0, 0, 0, 0, time.UTC)},
		{dateutil.YearMonth{Year: 2025, Month: time.December}, time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			assert.Equal(t, tt.expected, DASDueDate(tt.period))
		})
	}
}

func TestComputeFlatTax_DocumentURL(t *testing.T) {
	doc, err := ComputeFlatTax("11222333000181", "2025-03", d("1000"), config.DefaultSimplesBands(),
		WithReferenceGenerator(fixedReference), WithDocumentBaseURL("https://guias.example.com/das/"))
	require.NoError(t, err)
	assert.Equal(t, "https://guias.example.com/das/DAS-TEST0001", doc.DocumentURL)

	doc, err = ComputeFlatTax("11222333000181", "2025-03", d("1000"), config.DefaultSimplesBands(),
		WithReferenceGenerator(fixedReference))
	require.NoError(t, err)
	assert.Empty(t, doc.DocumentURL)
}

func TestNewReferenceCode(t *testing.T) {
	pattern := regexp.MustCompile(`^DAS-[0-9A-F]{16}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ref := NewReferenceCode()
		assert.Regexp(t, pattern, ref)
		assert.False(t, seen[ref], "duplicate reference %s", ref)
		seen[ref] = true
	}
}

func TestComputeFlatTax_InvalidInput(t *testing.T) {
	bounded := []domain.RevenueBand{{UpperBound: func() *decimal.Decimal { v := d("1000"); return &v }(), Rate: d("0.04")}}

	tests := []struct {
		name    string
		period  string
		revenue decimal.Decimal
		bands   []domain.RevenueBand
		field   string
	}{
		{"negative revenue", "2025-01", d("-100"), config.DefaultSimplesBands(), "revenue"},
		{"month out of range", "2025-13", d("100"), config.DefaultSimplesBands(), "period"},
		{"wrong layout", "12/2025", d("100"), config.DefaultSimplesBands(), "period"},
		{"empty period", "", d("100"), config.DefaultSimplesBands(), "period"},
		{"empty bands", "2025-01", d("100"), nil, "bands"},
		{"revenue beyond last band", "2025-01", d("1000.01"), bounded, "bands"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeFlatTax("11222333000181", tt.period, tt.revenue, tt.bands)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domain.ErrInvalidInput))
			field, _ := domain.InvalidField(err)
			assert.Equal(t, tt.field, field)
		})
	}
}

package calculation

import (
	"strings"
	"time"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/pkg/dateutil"
	fdec "github.com/contabilizei/fiscal-calculator/pkg/decimal"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DASDueDay is the day of the month following the apuração period on which
// the DAS guide falls due.
const DASDueDay = 20

// FlatTaxOption customizes ComputeFlatTax.
type FlatTaxOption func(*flatTaxOptions)

type flatTaxOptions struct {
	newReference func() string
	baseURL      string
}

// WithReferenceGenerator replaces the reference code generator.
func WithReferenceGenerator(f func() string) FlatTaxOption {
	return func(o *flatTaxOptions) {
		if f != nil {
			o.newReference = f
		}
	}
}

// WithDocumentBaseURL sets the prefix used to build DocumentURL.
func WithDocumentBaseURL(baseURL string) FlatTaxOption {
	return func(o *flatTaxOptions) {
		o.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// NewReferenceCode returns a random DAS reference such as "DAS-3F2A9C0D41B7E655".
func NewReferenceCode() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "DAS-" + strings.ToUpper(id[:16])
}

// ComputeFlatTax issues a DAS guide for the Simples Nacional regime. The
// first band whose upper bound covers revenue sets the rate.
func ComputeFlatTax(taxpayerID, period string, revenue decimal.Decimal, bands []domain.RevenueBand, opts ...FlatTaxOption) (domain.FlatTaxDocument, error) {
	o := flatTaxOptions{newReference: NewReferenceCode}
	for _, opt := range opts {
		opt(&o)
	}

	ym, err := dateutil.ParseYearMonth(period)
	if err != nil {
		return domain.FlatTaxDocument{}, domain.NewInvalidInput("period", "%v", err)
	}
	if revenue.IsNegative() {
		return domain.FlatTaxDocument{}, domain.NewInvalidInput("revenue", "cannot be negative, got %s", revenue.String())
	}
	if len(bands) == 0 {
		return domain.FlatTaxDocument{}, domain.NewInvalidInput("bands", "table is empty")
	}

	band, ok := matchBand(revenue, bands)
	if !ok {
		return domain.FlatTaxDocument{}, domain.NewInvalidInput("bands", "no band covers revenue %s", revenue.String())
	}

	doc := domain.FlatTaxDocument{
		TaxpayerID:    taxpayerID,
		Period:        ym,
		Revenue:       revenue,
		Rate:          band.Rate,
		AmountDue:     fdec.RoundCents(revenue.Mul(band.Rate)),
		DueDate:       DASDueDate(ym),
		ReferenceCode: o.newReference(),
	}
	if o.baseURL != "" {
		doc.DocumentURL = o.baseURL + "/" + doc.ReferenceCode
	}
	return doc, nil
}

// DASDueDate returns the due date of the guide for period.
func DASDueDate(period dateutil.YearMonth) time.Time {
	return period.Next().Day(DASDueDay)
}

func matchBand(revenue decimal.Decimal, bands []domain.RevenueBand) (domain.RevenueBand, bool) {
	for _, b := range bands {
		if b.Covers(revenue) {
			return b, true
		}
	}
	return domain.RevenueBand{}, false
}

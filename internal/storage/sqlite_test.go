package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestArchive(t *testing.T) *DASArchive {
	t.Helper()
	archive, err := NewDASArchive(context.Background(), filepath.Join(t.TempDir(), "data", "das.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = archive.Close() })
	return archive
}

func testDocument(ref string, month time.Month) domain.FlatTaxDocument {
	period := dateutil.YearMonth{Year: 2025, Month: month}
	return domain.FlatTaxDocument{
		TaxpayerID:    "11.222.333/0001-81",
		Period:        period,
		Revenue:       decimal.RequireFromString("70833.33"),
		Rate:          decimal.RequireFromString("0.04"),
		AmountDue:     decimal.RequireFromString("2833.33"),
		DueDate:       period.Next().Day(20),
		ReferenceCode: ref,
		DocumentURL:   "https://das.example/" + ref,
	}
}

func TestDASArchive_SaveAndGet(t *testing.T) {
	archive := createTestArchive(t)
	ctx := context.Background()

	doc := testDocument("DAS-0000000000000001", time.December)
	require.NoError(t, archive.Save(ctx, doc))

	got, err := archive.Get(ctx, doc.ReferenceCode)
	require.NoError(t, err)
	assert.Equal(t, "11222333000181", got.TaxpayerID)
	assert.Equal(t, doc.Period, got.Period)
	assert.True(t, got.Revenue.Equal(doc.Revenue))
	assert.True(t, got.Rate.Equal(doc.Rate))
	assert.Equal(t, "2833.33", got.AmountDue.StringFixed(2))
	assert.Equal(t, time.Date(2026, time.January, 20, 0, 0, 0, 0, time.UTC), got.DueDate)
	assert.Equal(t, doc.DocumentURL, got.DocumentURL)
}

func TestDASArchive_Duplicate(t *testing.T) {
	archive := createTestArchive(t)
	ctx := context.Background()

	doc := testDocument("DAS-0000000000000001", time.March)
	require.NoError(t, archive.Save(ctx, doc))

	err := archive.Save(ctx, doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateEntry), "got %v", err)
}

func TestDASArchive_NotFound(t *testing.T) {
	archive := createTestArchive(t)

	_, err := archive.Get(context.Background(), "DAS-FFFFFFFFFFFFFFFF")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDASArchive_ListByTaxpayer(t *testing.T) {
	archive := createTestArchive(t)
	ctx := context.Background()

	require.NoError(t, archive.Save(ctx, testDocument("DAS-B", time.May)))
	require.NoError(t, archive.Save(ctx, testDocument("DAS-A", time.February)))
	other := testDocument("DAS-C", time.January)
	other.TaxpayerID = "529.982.247-25"
	require.NoError(t, archive.Save(ctx, other))

	// bare digits match the masked form used on save
	docs, err := archive.ListByTaxpayer(ctx, "11222333000181")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "DAS-A", docs[0].ReferenceCode)
	assert.Equal(t, "DAS-B", docs[1].ReferenceCode)

	docs, err = archive.ListByTaxpayer(ctx, "000.000.001-91")
	require.NoError(t, err)
	require.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestDASArchive_EmptyArguments(t *testing.T) {
	archive := createTestArchive(t)
	ctx := context.Background()

	err := archive.Save(ctx, domain.FlatTaxDocument{TaxpayerID: "1"})
	assert.True(t, errors.Is(err, ErrEmptyString))

	_, err = archive.Get(ctx, " ")
	assert.True(t, errors.Is(err, ErrEmptyString))

	_, err = archive.ListByTaxpayer(ctx, "")
	assert.True(t, errors.Is(err, ErrEmptyString))

	_, err = NewDASArchive(ctx, "")
	assert.True(t, errors.Is(err, ErrEmptyString))
}

func TestDASArchive_MigrateIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "das.db")
	ctx := context.Background()

	first, err := NewDASArchive(ctx, path)
	require.NoError(t, err)
	require.NoError(t, first.Save(ctx, testDocument("DAS-KEEP", time.June)))
	require.NoError(t, first.Close())

	reopened, err := NewDASArchive(ctx, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	var version int
	require.NoError(t, reopened.db.QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, ExpectedSchemaVersion, version)

	_, err = reopened.Get(ctx, "DAS-KEEP")
	assert.NoError(t, err)
}

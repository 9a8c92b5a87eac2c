// Package storage archives generated DAS documents in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/contabilizei/fiscal-calculator/internal/domain"
	"github.com/contabilizei/fiscal-calculator/pkg/dateutil"
	"github.com/contabilizei/fiscal-calculator/pkg/taxid"
	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

const dueDateLayout = "2006-01-02"

// DASArchive stores DAS documents keyed by reference code.
type DASArchive struct {
	db     *sql.DB
	dbPath string
}

// NewDASArchive opens (creating if needed) the archive at dbPath and
// migrates it to the current schema. ":memory:" is accepted for tests.
func NewDASArchive(ctx context.Context, dbPath string) (*DASArchive, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// one connection: SQLite serializes writers anyway and :memory: is per connection
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	a := &DASArchive{db: db, dbPath: dbPath}
	if err := a.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return a, nil
}

// Close closes the database connection.
func (a *DASArchive) Close() error {
	return a.db.Close()
}

// Save inserts doc. A reference code already on file yields ErrDuplicateEntry.
func (a *DASArchive) Save(ctx context.Context, doc domain.FlatTaxDocument) error {
	if err := validateString(doc.ReferenceCode, "reference_code"); err != nil {
		return err
	}
	if err := validateString(doc.TaxpayerID, "taxpayer_id"); err != nil {
		return err
	}

	_, err := a.db.ExecContext(ctx, `
		INSERT INTO das_documents
			(reference_code, taxpayer_id, period, revenue, rate, amount_due, due_date, document_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		doc.ReferenceCode,
		taxid.Normalize(doc.TaxpayerID),
		doc.Period.String(),
		doc.Revenue.String(),
		doc.Rate.String(),
		doc.AmountDue.StringFixed(2),
		doc.DueDate.Format(dueDateLayout),
		doc.DocumentURL,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: %s", ErrDuplicateEntry, doc.ReferenceCode)
		}
		return fmt.Errorf("failed to save DAS document: %w", err)
	}
	return nil
}

// Get loads the document with the given reference code.
func (a *DASArchive) Get(ctx context.Context, referenceCode string) (*domain.FlatTaxDocument, error) {
	if err := validateString(referenceCode, "reference_code"); err != nil {
		return nil, err
	}

	row := a.db.QueryRowContext(ctx, `
		SELECT reference_code, taxpayer_id, period, revenue, rate, amount_due, due_date, document_url
		FROM das_documents WHERE reference_code = ?
	`, referenceCode)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, referenceCode)
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ListByTaxpayer returns every document for taxpayerID, oldest period first.
// The id is matched after normalization, so masked and bare forms agree.
func (a *DASArchive) ListByTaxpayer(ctx context.Context, taxpayerID string) ([]domain.FlatTaxDocument, error) {
	if err := validateString(taxpayerID, "taxpayer_id"); err != nil {
		return nil, err
	}

	rows, err := a.db.QueryContext(ctx, `
		SELECT reference_code, taxpayer_id, period, revenue, rate, amount_due, due_date, document_url
		FROM das_documents WHERE taxpayer_id = ?
		ORDER BY period, reference_code
	`, taxid.Normalize(taxpayerID))
	if err != nil {
		return nil, fmt.Errorf("failed to query DAS documents: %w", err)
	}
	defer func() { _ = rows.Close() }()

	docs := []domain.FlatTaxDocument{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate DAS documents: %w", err)
	}
	return docs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(s scanner) (*domain.FlatTaxDocument, error) {
	var (
		doc                           domain.FlatTaxDocument
		period, revenue, rate, amount string
		dueDate                       string
		documentURL                   sql.NullString
	)
	if err := s.Scan(&doc.ReferenceCode, &doc.TaxpayerID, &period, &revenue, &rate, &amount, &dueDate, &documentURL); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan DAS document: %w", err)
	}

	var err error
	if doc.Period, err = dateutil.ParseYearMonth(period); err != nil {
		return nil, fmt.Errorf("corrupt period %q: %w", period, err)
	}
	if doc.Revenue, err = decimal.NewFromString(revenue); err != nil {
		return nil, fmt.Errorf("corrupt revenue %q: %w", revenue, err)
	}
	if doc.Rate, err = decimal.NewFromString(rate); err != nil {
		return nil, fmt.Errorf("corrupt rate %q: %w", rate, err)
	}
	if doc.AmountDue, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("corrupt amount %q: %w", amount, err)
	}
	if doc.DueDate, err = time.Parse(dueDateLayout, dueDate); err != nil {
		return nil, fmt.Errorf("corrupt due date %q: %w", dueDate, err)
	}
	doc.DocumentURL = documentURL.String
	return &doc, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/contabilizei/fiscal-calculator/internal/logger"
)

// ExpectedSchemaVersion is the latest schema version the archive expects.
const ExpectedSchemaVersion = 2

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial DAS archive schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS das_documents (
					reference_code TEXT PRIMARY KEY,
					taxpayer_id TEXT NOT NULL,
					period TEXT NOT NULL,
					revenue TEXT NOT NULL,
					rate TEXT NOT NULL,
					amount_due TEXT NOT NULL,
					due_date TEXT NOT NULL,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX idx_das_documents_taxpayer ON das_documents(taxpayer_id)`,
			}

			for _, query := range queries {
				if _, err := tx.Exec(query); err != nil {
					return fmt.Errorf("failed to execute query '%s': %w", query, err)
				}
			}
			return nil
		},
	},
	{
		Version:     2,
		Description: "Add document URL",
		Up: func(tx *sql.Tx) error {
			_, err := tx.Exec(`ALTER TABLE das_documents ADD COLUMN document_url TEXT DEFAULT ''`)
			if err != nil {
				return fmt.Errorf("failed to add document_url column: %w", err)
			}
			return nil
		},
	},
}

// Migrate applies every migration newer than the database's user_version,
// each in its own transaction.
func (a *DASArchive) Migrate(ctx context.Context) error {
	log := logger.FromContext(ctx)

	var currentVersion int
	if err := a.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := a.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		log.Debug().Int("version", migration.Version).Str("description", migration.Description).Msg("applied migration")
	}

	var finalVersion int
	if err := a.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion); err != nil {
		return fmt.Errorf("failed to verify final schema version: %w", err)
	}
	if finalVersion != ExpectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d", ExpectedSchemaVersion, finalVersion)
	}
	return nil
}

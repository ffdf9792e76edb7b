// Package ledger keeps an append-only SQLite record of every expense extracted,
// tagged with the run that produced it.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pfrederiksen/camara-gastos/internal/expense"

	_ "modernc.org/sqlite" // SQLite driver
)

// Schema defines the ledger tables
const Schema = `
CREATE TABLE IF NOT EXISTS expense_records (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    representative TEXT NOT NULL,
    category TEXT NOT NULL,
    vendor TEXT NOT NULL,
    tax_id TEXT NOT NULL,
    amount TEXT NOT NULL,              -- as printed on the page
    period TEXT NOT NULL,              -- MM/YYYY
    recorded_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_expense_records_representative
    ON expense_records(representative);

CREATE INDEX IF NOT EXISTS idx_expense_records_period
    ON expense_records(period);
`

// Ledger is a SQLite-backed record store
type Ledger struct {
	db *sql.DB
}

// Open opens (creating if needed) the ledger database at path
func Open(path string) (*Ledger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping ledger: %w", err)
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize ledger schema: %w", err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the database
func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Append inserts records for a run in a single transaction
func (l *Ledger) Append(ctx context.Context, runID string, records []expense.Record) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO expense_records
			(run_id, representative, category, vendor, tax_id, amount, period, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, rec := range records {
		if _, err := stmt.ExecContext(ctx, runID, rec.Representative, rec.Category, rec.Vendor,
			rec.TaxID, rec.Amount, rec.Period, now); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// CountByRepresentative returns the number of stored records of a representative
// across all runs
func (l *Ledger) CountByRepresentative(ctx context.Context, representative string) (int, error) {
	var n int
	err := l.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM expense_records WHERE representative = ?`, representative).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

// Records returns the records stored by one run, in insertion order
func (l *Ledger) Records(ctx context.Context, runID string) ([]expense.Record, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT representative, category, vendor, tax_id, amount, period
		FROM expense_records WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []expense.Record
	for rows.Next() {
		var r expense.Record
		if err := rows.Scan(&r.Representative, &r.Category, &r.Vendor, &r.TaxID, &r.Amount, &r.Period); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

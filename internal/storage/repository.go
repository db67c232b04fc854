// Package storage keeps a local SQLite mirror of the ledger. The sheet is
// the source of truth; the mirror is fed by append events and doubles as a
// full ledger backend for offline runs.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"budgetbot/internal/core"
	"budgetbot/internal/ledger"

	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db    *sql.DB
	clock func() time.Time
}

var _ ledger.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db, clock: time.Now}, nil
}

// WithClock replaces the clock used to name the current period.
func (r *SQLiteRepository) WithClock(clock func() time.Time) *SQLiteRepository {
	r.clock = clock
	return r
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// ResolveCurrentPeriod returns the handle for the current month. Periods are
// just a column value here, so there is no table to create and no header row
// to write.
func (r *SQLiteRepository) ResolveCurrentPeriod(_ context.Context) (ledger.Period, error) {
	return ledger.Period{Name: core.PeriodName(r.clock())}, nil
}

func (r *SQLiteRepository) Append(ctx context.Context, p ledger.Period, rec core.ExpenseRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO records (period, date, category, amount, comment) VALUES (?, ?, ?, ?, ?)`,
		p.Name, rec.Date, rec.Category, rec.Amount, rec.Comment)
	if err != nil {
		return fmt.Errorf("insert record: %w", errors.Join(ledger.ErrUnavailable, err))
	}
	slog.InfoContext(ctx, "Record saved to SQLite",
		"period", p.Name,
		"category", rec.Category,
		"amount", rec.Amount)
	return nil
}

func (r *SQLiteRepository) ReadAll(ctx context.Context, p ledger.Period) ([]core.ExpenseRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT date, category, amount, comment FROM records WHERE period = ? ORDER BY id`,
		p.Name)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", errors.Join(ledger.ErrUnavailable, err))
	}
	defer rows.Close()

	var out []core.ExpenseRecord
	for rows.Next() {
		var rec core.ExpenseRecord
		if err := rows.Scan(&rec.Date, &rec.Category, &rec.Amount, &rec.Comment); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", errors.Join(ledger.ErrUnavailable, err))
	}
	return out, nil
}

// CountRecords reports the number of mirrored rows in a period.
func (r *SQLiteRepository) CountRecords(ctx context.Context, period string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM records WHERE period = ?`, period).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

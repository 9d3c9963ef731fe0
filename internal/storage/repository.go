package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"expenses/internal/core"
	"expenses/internal/ledger"

	_ "modernc.org/sqlite"
)

// SQLiteRepository implements ledger.Store on a local SQLite database.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
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

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Append implements ledger.Store.
func (r *SQLiteRepository) Append(ctx context.Context, rec core.Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO expenses (date, category, amount_cents, description) VALUES (?, ?, ?, ?)`,
		rec.Date.String(), rec.Category, rec.Amount.Cents, rec.Description)
	if err != nil {
		return "", &ledger.StorageError{Op: "append", Path: "sqlite", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", &ledger.StorageError{Op: "append", Path: "sqlite", Err: err}
	}

	slog.InfoContext(ctx, "Expense saved to SQLite",
		"id", id,
		"date", rec.Date.String(),
		"category", rec.Category,
		"amount_cents", rec.Amount.Cents)

	return "sqlite:" + strconv.FormatInt(id, 10), nil
}

// Load implements ledger.Store. Rows whose stored date or amount no
// longer parses are reported as skipped, keyed by row id.
func (r *SQLiteRepository) Load(ctx context.Context) (ledger.LoadResult, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, category, amount_cents, description FROM expenses ORDER BY id`)
	if err != nil {
		return ledger.LoadResult{}, &ledger.StorageError{Op: "load", Path: "sqlite", Err: err}
	}
	defer rows.Close()

	var res ledger.LoadResult
	for rows.Next() {
		var (
			id          int64
			dateStr     string
			category    string
			amountCents int64
			description string
		)
		if err := rows.Scan(&id, &dateStr, &category, &amountCents, &description); err != nil {
			return ledger.LoadResult{}, &ledger.StorageError{Op: "load", Path: "sqlite", Err: err}
		}
		date, err := core.ParseDate(dateStr)
		if err != nil {
			res.Skipped = append(res.Skipped, ledger.SkippedRow{Line: int(id), Reason: fmt.Sprintf("bad date %q", dateStr)})
			continue
		}
		rec := core.Record{
			Date:        date,
			Category:    category,
			Amount:      core.Money{Cents: amountCents},
			Description: description,
		}
		if err := rec.Validate(); err != nil {
			res.Skipped = append(res.Skipped, ledger.SkippedRow{Line: int(id), Reason: err.Error()})
			continue
		}
		res.Records = append(res.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return ledger.LoadResult{}, &ledger.StorageError{Op: "load", Path: "sqlite", Err: err}
	}

	return res, nil
}

// Package csvfile implements the expense ledger on a flat CSV file.
//
// The file is UTF-8 text with a fixed header row, one record per data
// row, ISO-8601 dates and dot-decimal amounts. The file is treated as
// exclusively owned by one process; a mutex serializes appends within
// the process.
package csvfile

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"expenses/internal/core"
	"expenses/internal/ledger"
)

var header = []string{"date", "category", "amount", "description"}

type Store struct {
	mu   sync.Mutex
	path string
	rows int64 // data rows in the file; -1 until first counted
}

func New(path string) *Store {
	return &Store{path: path, rows: -1}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Append validates the record and writes it through to the backing file,
// creating the file (with its header row) on first use.
func (s *Store) Append(ctx context.Context, rec core.Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rows < 0 {
		res, err := s.loadLocked()
		if err != nil {
			return "", err
		}
		s.rows = int64(len(res.Records) + len(res.Skipped))
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", &ledger.StorageError{Op: "append", Path: s.path, Err: err}
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", &ledger.StorageError{Op: "append", Path: s.path, Err: err}
	}

	w := csv.NewWriter(f)
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return "", &ledger.StorageError{Op: "append", Path: s.path, Err: err}
	}
	if info.Size() == 0 {
		if err := w.Write(header); err != nil {
			f.Close()
			return "", &ledger.StorageError{Op: "append", Path: s.path, Err: err}
		}
	}

	row := []string{rec.Date.String(), rec.Category, rec.Amount.Decimal(), rec.Description}
	if err := w.Write(row); err != nil {
		f.Close()
		return "", &ledger.StorageError{Op: "append", Path: s.path, Err: err}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return "", &ledger.StorageError{Op: "append", Path: s.path, Err: err}
	}
	// Write-through: the record must be durable before Append returns
	if err := f.Sync(); err != nil {
		f.Close()
		return "", &ledger.StorageError{Op: "append", Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &ledger.StorageError{Op: "append", Path: s.path, Err: err}
	}

	s.rows++
	ref := fmt.Sprintf("csv:%d", s.rows)

	slog.InfoContext(ctx, "Expense appended to CSV ledger",
		"ref", ref,
		"date", rec.Date.String(),
		"category", rec.Category,
		"amount_cents", rec.Amount.Cents)

	return ref, nil
}

// Load reads all records in file order. A missing file yields an empty
// result. Rows that cannot be parsed are skipped and reported.
func (s *Store) Load(ctx context.Context) (ledger.LoadResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.loadLocked()
	if err != nil {
		return ledger.LoadResult{}, err
	}
	s.rows = int64(len(res.Records) + len(res.Skipped))
	return res, nil
}

func (s *Store) loadLocked() (ledger.LoadResult, error) {
	var res ledger.LoadResult

	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return res, nil
		}
		return res, &ledger.StorageError{Op: "load", Path: s.path, Err: err}
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // field count is checked per row so bad rows can be skipped

	rowNum := 0
	for {
		fields, err := r.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				res.Skipped = append(res.Skipped, ledger.SkippedRow{Line: rowNum, Reason: parseErr.Err.Error()})
				continue
			}
			return ledger.LoadResult{}, &ledger.StorageError{Op: "load", Path: s.path, Err: err}
		}
		if rowNum == 1 && isHeader(fields) {
			continue
		}
		rec, reason := parseRow(fields)
		if reason != "" {
			res.Skipped = append(res.Skipped, ledger.SkippedRow{Line: rowNum, Reason: reason})
			continue
		}
		res.Records = append(res.Records, rec)
	}

	return res, nil
}

func isHeader(fields []string) bool {
	if len(fields) != len(header) {
		return false
	}
	for i, h := range header {
		if !strings.EqualFold(strings.TrimSpace(fields[i]), h) {
			return false
		}
	}
	return true
}

func parseRow(fields []string) (core.Record, string) {
	if len(fields) != len(header) {
		return core.Record{}, fmt.Sprintf("wrong column count: got %d, want %d", len(fields), len(header))
	}
	date, err := core.ParseDate(fields[0])
	if err != nil {
		return core.Record{}, fmt.Sprintf("bad date %q", fields[0])
	}
	cents, err := core.ParseDecimalToCents(fields[2])
	if err != nil {
		return core.Record{}, fmt.Sprintf("bad amount %q", fields[2])
	}
	rec := core.Record{
		Date:        date,
		Category:    strings.TrimSpace(fields[1]),
		Amount:      core.Money{Cents: cents},
		Description: fields[3],
	}
	if err := rec.Validate(); err != nil {
		return core.Record{}, err.Error()
	}
	return rec, ""
}

package storage

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"expenses/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "expenses.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestAppendAndLoadRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	records := []core.Record{
		{Date: core.NewDate(2024, 3, 1), Category: "Food", Amount: core.Money{Cents: 1250}, Description: "lunch"},
		{Date: core.NewDate(2024, 3, 1), Category: "Transport", Amount: core.Money{Cents: 300}},
	}
	for i, rec := range records {
		ref, err := repo.Append(ctx, rec)
		if err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
		if !strings.HasPrefix(ref, "sqlite:") {
			t.Fatalf("ref = %q, want sqlite: prefix", ref)
		}
	}

	res, err := repo.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Skipped) != 0 {
		t.Fatalf("unexpected skipped rows: %+v", res.Skipped)
	}
	if len(res.Records) != len(records) {
		t.Fatalf("loaded %d records, want %d", len(res.Records), len(records))
	}
	for i, want := range records {
		if res.Records[i] != want {
			t.Fatalf("record %d: got %+v, want %+v", i, res.Records[i], want)
		}
	}
}

func TestAppendRejectsInvalidRecord(t *testing.T) {
	repo := newTestRepo(t)
	rec := core.Record{Date: core.NewDate(2024, 3, 1), Amount: core.Money{Cents: 1}}
	if _, err := repo.Append(context.Background(), rec); !errors.Is(err, core.ErrEmptyCategory) {
		t.Fatalf("expected ErrEmptyCategory, got %v", err)
	}
}

func TestLoadEmptyDatabase(t *testing.T) {
	repo := newTestRepo(t)
	res, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(res.Records) != 0 {
		t.Fatalf("expected no records, got %d", len(res.Records))
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "expenses.db")
	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	repo.Close()

	// Reopening must re-run migrations without error
	again, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	again.Close()
}

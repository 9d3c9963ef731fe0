package backend

import (
	"context"
	"path/filepath"
	"testing"

	"expenses/internal/core"
)

func TestCreateRejectsUnknownType(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.Create(Config{Type: "sheets"}); err == nil {
		t.Fatalf("expected error for unknown backend type")
	}
}

func TestCreateCSVBackend(t *testing.T) {
	f := NewFactory(nil)
	res, err := f.Create(Config{
		Type:    CSVBackend,
		CSVPath: filepath.Join(t.TempDir(), "expenses.csv"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Cleanup != nil {
		t.Fatalf("csv backend needs no cleanup")
	}

	rec := core.Record{Date: core.NewDate(2024, 3, 1), Category: "Food", Amount: core.Money{Cents: 100}}
	if _, err := res.Store.Append(context.Background(), rec); err != nil {
		t.Fatalf("append through csv backend: %v", err)
	}
}

func TestCreateMemoryBackend(t *testing.T) {
	res, err := NewFactory(nil).Create(Config{Type: MemoryBackend})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	loaded, err := res.Store.Load(context.Background())
	if err != nil || len(loaded.Records) != 0 {
		t.Fatalf("expected empty memory store, got %v %v", loaded, err)
	}
}

func TestTypeIsValid(t *testing.T) {
	for _, typ := range []Type{CSVBackend, SQLiteBackend, MemoryBackend} {
		if !typ.IsValid() {
			t.Fatalf("%s should be valid", typ)
		}
	}
	if Type("postgres").IsValid() {
		t.Fatalf("unknown type should be invalid")
	}
}

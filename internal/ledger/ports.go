// Package ledger defines the port for durable expense storage.
//
// A Store owns the append-only sequence of expense records. Implementations
// live in subpackages (csvfile, memory) and in internal/storage (SQLite).
package ledger

import (
	"context"
	"fmt"

	"expenses/internal/core"
)

type (
	// Store is the outbound port for the expense ledger.
	Store interface {
		// Append validates the record and writes it after all previously
		// stored records. The returned rowRef identifies the stored row
		// for logging only; rows have no stable identity beyond position.
		Append(ctx context.Context, rec core.Record) (rowRef string, err error)

		// Load reads every record in append order. A missing backing file
		// yields an empty result, not an error. Rows that cannot be parsed
		// are skipped and reported in the result; they are never silently
		// dropped.
		Load(ctx context.Context) (LoadResult, error)
	}

	// LoadResult carries the loaded records plus any rows that were
	// skipped because they could not be parsed.
	LoadResult struct {
		Records []core.Record
		Skipped []SkippedRow
	}

	// SkippedRow reports one unparsable row encountered during Load.
	SkippedRow struct {
		Line   int // 1-based line (or row id) in the backing store
		Reason string
	}
)

// StorageError wraps a failure to read or write the backing store.
type StorageError struct {
	Op   string // "append", "load", "open"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("ledger %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

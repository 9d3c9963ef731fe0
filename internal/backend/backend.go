// Package backend selects and constructs the ledger store from config.
package backend

import (
	"expenses/internal/ledger"
)

// Type identifies a ledger backend.
type Type string

const (
	CSVBackend    Type = "csv"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is recognized.
func (t Type) IsValid() bool {
	switch t {
	case CSVBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Result contains the constructed store and an optional cleanup.
type Result struct {
	Store   ledger.Store
	Cleanup CleanupFunc
}

// Config holds what the factory needs to build a store.
type Config struct {
	Type         Type
	CSVPath      string
	SQLiteDBPath string
}

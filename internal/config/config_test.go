package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tmp := t.TempDir()

	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid csv backend config",
			config: Config{
				Port:        "8081",
				DataBackend: "csv",
				CSVPath:     filepath.Join(tmp, "expenses.csv"),
				CacheTTL:    5 * time.Minute,
			},
			wantErr: false,
		},
		{
			name: "valid sqlite backend config",
			config: Config{
				Port:         "8081",
				DataBackend:  "sqlite",
				SQLiteDBPath: filepath.Join(tmp, "expenses.db"),
				CacheTTL:     5 * time.Minute,
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:        "abc",
				DataBackend: "memory",
				CacheTTL:    time.Minute,
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range",
			config: Config{
				Port:        "70000",
				DataBackend: "memory",
				CacheTTL:    time.Minute,
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "invalid data backend",
			config: Config{
				Port:        "8080",
				DataBackend: "sheets",
				CacheTTL:    time.Minute,
			},
			wantErr:     true,
			errorString: "invalid data backend 'sheets'",
		},
		{
			name: "csv backend missing path",
			config: Config{
				Port:        "8080",
				DataBackend: "csv",
				CSVPath:     "",
				CacheTTL:    time.Minute,
			},
			wantErr:     true,
			errorString: "CSV ledger path cannot be empty",
		},
		{
			name: "cache TTL too small",
			config: Config{
				Port:        "8080",
				DataBackend: "memory",
				CacheTTL:    time.Millisecond,
			},
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8081" {
		t.Fatalf("default port = %s, want 8081", cfg.Port)
	}
	if cfg.DataBackend != "csv" {
		t.Fatalf("default backend = %s, want csv", cfg.DataBackend)
	}
	if cfg.CSVPath != "./data/expenses.csv" {
		t.Fatalf("default csv path = %s", cfg.CSVPath)
	}
}

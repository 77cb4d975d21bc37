package dexdb_test

import (
	"errors"
	"testing"
	"time"

	"github.com/vvka-141/dexdb/pkg/dexdb"
)

func TestSyncConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		config    dexdb.SyncConfig
		wantError bool
		errorType error
	}{
		{
			name: "valid config",
			config: dexdb.SyncConfig{
				Target:  "postgresql://localhost:5432/dex",
				DataDir: "data",
			},
			wantError: false,
		},
		{
			name: "valid config with timeout and echo",
			config: dexdb.SyncConfig{
				Target:  "sqlite://dex.db",
				DataDir: "data",
				Timeout: time.Minute,
				EchoSQL: true,
			},
			wantError: false,
		},
		{
			name: "missing target",
			config: dexdb.SyncConfig{
				DataDir: "data",
			},
			wantError: true,
			errorType: dexdb.ErrUsage,
		},
		{
			name: "missing data dir",
			config: dexdb.SyncConfig{
				Target: "sqlite://dex.db",
			},
			wantError: true,
			errorType: dexdb.ErrInvalidConfig,
		},
		{
			name: "negative timeout",
			config: dexdb.SyncConfig{
				Target:  "sqlite://dex.db",
				DataDir: "data",
				Timeout: -time.Second,
			},
			wantError: true,
			errorType: dexdb.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if tt.errorType != nil && !errors.Is(err, tt.errorType) {
					t.Errorf("Expected error to wrap %v, got %v", tt.errorType, err)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestSyncConfig_Validate_CollectsAllErrors(t *testing.T) {
	cfg := dexdb.SyncConfig{Timeout: -1}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !errors.Is(err, dexdb.ErrUsage) || !errors.Is(err, dexdb.ErrInvalidConfig) {
		t.Errorf("Expected both usage and config errors, got %v", err)
	}
}

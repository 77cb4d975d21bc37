package dexdb

import (
	"errors"
	"fmt"
	"time"
)

// SyncConfig contains all parameters needed for a load, reload or dump.
type SyncConfig struct {
	// Target is the connection target (postgres URI, sqlite path or URI).
	Target string

	// DataDir is the directory holding one CSV file per table.
	DataDir string

	// StrictBooleans rejects boolean fields that are neither "True" nor "False"
	// instead of passing the raw text through to the store.
	StrictBooleans bool

	// EchoSQL logs every statement sent to the store.
	EchoSQL bool

	// Force skips the interactive approval prompt on reload.
	Force bool

	// Timeout is the global timeout for the entire command. Zero means none.
	Timeout time.Duration

	// Verbose enables detailed logging.
	Verbose bool
}

// Validate checks if the SyncConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *SyncConfig) Validate() error {
	var errs []error

	if c.Target == "" {
		errs = append(errs, fmt.Errorf("connection target is required: %w", ErrUsage))
	}

	if c.DataDir == "" {
		errs = append(errs, fmt.Errorf("DataDir is required: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

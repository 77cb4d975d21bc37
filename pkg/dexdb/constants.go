package dexdb

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess         = 0  // Command completed successfully
	ExitGeneralError    = 1  // Unknown or unclassified error
	ExitUsageError      = 2  // CLI usage error (missing args, invalid flags, bad target)
	ExitPanic           = 3  // Internal panic (unexpected crash)
	ExitConfigError     = 10 // Invalid configuration
	ExitConnectionError = 11 // Failed to connect to the store
	ExitApprovalDenied  = 12 // Operator denied reload approval
	ExitSchemaError     = 20 // Invalid table declarations (cycle, unknown reference)
	ExitDataError       = 21 // A CSV row could not be decoded
	ExitStoreError      = 22 // The store rejected a row or statement
	ExitIOError         = 23 // A data file could not be read or written
)

const (
	// DefaultDataDir is the directory holding one CSV file per table.
	DefaultDataDir = "data"

	// DataFileExtension is appended to the table name to form its file name.
	DataFileExtension = ".csv"

	// DefaultTimeout is the catastrophic-failure timeout for a single command.
	DefaultTimeout = 10 * time.Minute

	// DefaultForceApprovalCountdown is the countdown before a forced reload proceeds.
	DefaultForceApprovalCountdown = 3 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 100 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of connection retry attempts.
	DefaultRetryMaxAttempts = 3

	// BooleanTrue and BooleanFalse are the literal CSV forms of boolean values.
	BooleanTrue  = "True"
	BooleanFalse = "False"
)

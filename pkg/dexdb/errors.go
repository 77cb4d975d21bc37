package dexdb

import (
	"errors"
	"fmt"
	"strings"
)

// Error categories. Every concrete failure wraps exactly one of these, so
// callers can branch on the category with errors.Is without knowing the
// specific cause.
var (
	// ErrUsage indicates invalid command-line arguments or an unusable connection target.
	ErrUsage = errors.New("usage error")

	// ErrSchema indicates the table declarations themselves are invalid.
	// Schema errors are raised while building the registry, before any I/O.
	ErrSchema = errors.New("schema error")

	// ErrData indicates a CSV source contains a row that cannot be decoded.
	ErrData = errors.New("data error")

	// ErrStore indicates the relational store rejected an operation or could not be reached.
	ErrStore = errors.New("store error")

	// ErrIO indicates a data file could not be read or written.
	ErrIO = errors.New("i/o error")
)

// Sentinel errors for specific failure scenarios.
//
// Example usage:
//
//	err := syncer.Load(ctx, cfg)
//	if errors.Is(err, dexdb.ErrSourceNotFound) {
//	    // a table has no CSV file under the data directory
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrApprovalDenied indicates the operator denied approval for a destructive operation.
	ErrApprovalDenied = errors.New("approval denied")

	ErrCyclicSchema     = fmt.Errorf("%w: cyclic foreign keys", ErrSchema)
	ErrUnknownReference = fmt.Errorf("%w: unknown reference", ErrSchema)
	ErrInvalidSchema    = fmt.Errorf("%w: invalid table declaration", ErrSchema)

	ErrRequiredFieldMissing = fmt.Errorf("%w: required field missing", ErrData)
	ErrTypeCoercion         = fmt.Errorf("%w: type coercion failed", ErrData)
	ErrMalformedRow         = fmt.Errorf("%w: malformed row", ErrData)
	ErrHeaderMismatch       = fmt.Errorf("%w: header mismatch", ErrData)

	ErrConstraintViolation = fmt.Errorf("%w: constraint violation", ErrStore)
	ErrConnectionFailed    = fmt.Errorf("%w: connection failed", ErrStore)

	ErrSourceNotFound = fmt.Errorf("%w: source not found", ErrIO)
	ErrWriteFailed    = fmt.Errorf("%w: write failed", ErrIO)
)

// CyclicSchemaError reports the tables participating in a foreign-key cycle.
type CyclicSchemaError struct {
	Tables []string
}

func (e *CyclicSchemaError) Error() string {
	return fmt.Sprintf("cyclic schema: foreign keys form a cycle among tables [%s]", strings.Join(e.Tables, ", "))
}

func (e *CyclicSchemaError) Unwrap() error { return ErrCyclicSchema }

// RowError attaches table, line and column context to a data error.
// Line is the 1-based line in the CSV file (the header is line 1); it is
// zero when the row did not come from a file.
type RowError struct {
	Table  string
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	var b strings.Builder
	b.WriteString(e.Table)
	if e.Line > 0 {
		fmt.Fprintf(&b, ":%d", e.Line)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	b.WriteString(": ")
	b.WriteString(e.Err.Error())
	return b.String()
}

func (e *RowError) Unwrap() error { return e.Err }

// usagePatterns are cobra/pflag messages for argument errors. Cobra returns
// these as plain errors, so they can only be recognized by text.
var usagePatterns = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts at most",
	"accepts 1 arg",
	"invalid argument",
	"required flag",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrApprovalDenied):
		return ExitApprovalDenied
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrSchema):
		return ExitSchemaError
	case errors.Is(err, ErrData):
		return ExitDataError
	case errors.Is(err, ErrStore):
		return ExitStoreError
	case errors.Is(err, ErrIO):
		return ExitIOError
	}

	errStr := err.Error()
	for _, p := range usagePatterns {
		if strings.Contains(errStr, p) {
			return ExitUsageError
		}
	}

	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

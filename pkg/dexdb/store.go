package dexdb

import "context"

// Connector opens a Store for a resolved connection target.
// Different implementations handle the supported engines (PostgreSQL via
// pgx, SQLite via database/sql).
type Connector interface {
	// Connect opens the store. The caller must Close it when done.
	Connect(ctx context.Context) (Store, error)
}

// Store is an open connection to a relational store.
//
// Thread-Safety: NOT safe for concurrent use. A Store serves exactly one
// command invocation and holds at most one transaction at a time.
type Store interface {
	// Dialect names the SQL dialect spoken by the store ("postgres", "sqlite").
	Dialect() string

	// Target returns a description of the store with credentials redacted,
	// suitable for logs and approval prompts.
	Target() string

	// Begin starts a transaction.
	Begin(ctx context.Context, opts TxOptions) (Tx, error)

	// Close releases the underlying connection. Close is idempotent.
	Close() error
}

// TxOptions configures a transaction.
type TxOptions struct {
	// ReadOnly marks the transaction as read-only where the engine supports it.
	ReadOnly bool
}

// Tx is a transaction on a Store. Every statement a command issues runs in
// a single Tx; Commit makes the work visible, Rollback discards it.
type Tx interface {
	// Exec executes a statement that returns no rows.
	Exec(ctx context.Context, sql string, args ...any) error

	// Query executes a statement that returns rows.
	Query(ctx context.Context, sql string, args ...any) (Rows, error)

	// InsertRows bulk-inserts rows into table. Each row holds one value per
	// entry in columns, in the same order. Returns the number of rows inserted.
	InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)

	// Commit commits the transaction.
	Commit(ctx context.Context) error

	// Rollback aborts the transaction. Calling Rollback after Commit is a no-op.
	Rollback(ctx context.Context) error
}

// Rows is a forward-only cursor over a query result.
type Rows interface {
	// Next advances to the next row, returning false when exhausted or on error.
	Next() bool

	// Values returns the decoded values of the current row, one per column.
	Values() ([]any, error)

	// Err returns the error, if any, encountered during iteration.
	Err() error

	// Close releases the cursor. Close is idempotent.
	Close()
}

package db

import (
	"context"
	"database/sql"
	"errors"

	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// maxBindVars bounds the arguments of one INSERT. SQLite builds compiled
// with default limits accept 32766.
const maxBindVars = 32766

// maxInsertBatch caps the number of rows per INSERT statement.
const maxInsertBatch = 500

// sqlStore adapts *sql.DB to dexdb.Store. It is used for SQLite.
type sqlStore struct {
	db      *sql.DB
	dialect Dialect
	display string
}

// NewSQLStore wraps an open *sql.DB speaking the given dialect.
func NewSQLStore(db *sql.DB, dialect Dialect, display string) dexdb.Store {
	return &sqlStore{db: db, dialect: dialect, display: display}
}

func (s *sqlStore) Dialect() string { return s.dialect.Name }
func (s *sqlStore) Target() string  { return s.display }

func (s *sqlStore) Begin(ctx context.Context, opts dexdb.TxOptions) (dexdb.Tx, error) {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{ReadOnly: opts.ReadOnly})
	if err != nil {
		return nil, classifyError(err)
	}
	return &sqlTx{tx: tx, dialect: s.dialect}, nil
}

func (s *sqlStore) Close() error {
	return s.db.Close()
}

type sqlTx struct {
	tx      *sql.Tx
	dialect Dialect
}

func (t *sqlTx) Exec(ctx context.Context, query string, args ...any) error {
	_, err := t.tx.ExecContext(ctx, query, args...)
	return classifyError(err)
}

func (t *sqlTx) Query(ctx context.Context, query string, args ...any) (dexdb.Rows, error) {
	rows, err := t.tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyError(err)
	}
	cols, err := rows.Columns()
	if err != nil {
		rows.Close()
		return nil, classifyError(err)
	}
	return &sqlRows{rows: rows, width: len(cols)}, nil
}

// InsertRows issues multi-row INSERT statements in batches.
func (t *sqlTx) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 || len(columns) == 0 {
		return 0, nil
	}
	batch := min(maxInsertBatch, max(1, maxBindVars/len(columns)))

	var inserted int64
	for start := 0; start < len(rows); start += batch {
		chunk := rows[start:min(start+batch, len(rows))]
		args := make([]any, 0, len(chunk)*len(columns))
		for _, row := range chunk {
			args = append(args, row...)
		}
		res, err := t.tx.ExecContext(ctx, t.dialect.Insert(table, columns, len(chunk)), args...)
		if err != nil {
			return inserted, classifyError(err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			n = int64(len(chunk))
		}
		inserted += n
	}
	return inserted, nil
}

func (t *sqlTx) Commit(context.Context) error {
	return classifyError(t.tx.Commit())
}

func (t *sqlTx) Rollback(context.Context) error {
	err := t.tx.Rollback()
	if errors.Is(err, sql.ErrTxDone) {
		return nil
	}
	return classifyError(err)
}

type sqlRows struct {
	rows  *sql.Rows
	width int
}

func (r *sqlRows) Next() bool { return r.rows.Next() }
func (r *sqlRows) Close()     { _ = r.rows.Close() }
func (r *sqlRows) Err() error { return classifyError(r.rows.Err()) }

func (r *sqlRows) Values() ([]any, error) {
	values := make([]any, r.width)
	dest := make([]any, r.width)
	for i := range values {
		dest[i] = &values[i]
	}
	if err := r.rows.Scan(dest...); err != nil {
		return nil, classifyError(err)
	}
	return values, nil
}

var _ dexdb.Store = (*sqlStore)(nil)

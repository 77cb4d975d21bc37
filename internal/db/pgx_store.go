package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// pgxStore adapts *pgxpool.Pool to dexdb.Store. Transactions are pinned to a
// single pooled connection by pgx.
type pgxStore struct {
	pool    *pgxpool.Pool
	display string
}

// NewPgxStore wraps an open pool.
func NewPgxStore(pool *pgxpool.Pool, display string) dexdb.Store {
	return &pgxStore{pool: pool, display: display}
}

func (s *pgxStore) Dialect() string { return DialectPostgres }
func (s *pgxStore) Target() string  { return s.display }

func (s *pgxStore) Begin(ctx context.Context, opts dexdb.TxOptions) (dexdb.Tx, error) {
	txOpts := pgx.TxOptions{}
	if opts.ReadOnly {
		txOpts.AccessMode = pgx.ReadOnly
	}
	tx, err := s.pool.BeginTx(ctx, txOpts)
	if err != nil {
		return nil, classifyError(err)
	}
	return &pgxTx{tx: tx}, nil
}

func (s *pgxStore) Close() error {
	s.pool.Close()
	return nil
}

type pgxTx struct {
	tx pgx.Tx
}

func (t *pgxTx) Exec(ctx context.Context, sql string, args ...any) error {
	_, err := t.tx.Exec(ctx, sql, args...)
	return classifyError(err)
}

func (t *pgxTx) Query(ctx context.Context, sql string, args ...any) (dexdb.Rows, error) {
	rows, err := t.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, classifyError(err)
	}
	return &pgxRows{rows: rows}, nil
}

// InsertRows streams rows with the COPY protocol.
func (t *pgxTx) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	n, err := t.tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	return n, classifyError(err)
}

func (t *pgxTx) Commit(ctx context.Context) error {
	return classifyError(t.tx.Commit(ctx))
}

func (t *pgxTx) Rollback(ctx context.Context) error {
	err := t.tx.Rollback(ctx)
	if errors.Is(err, pgx.ErrTxClosed) {
		return nil
	}
	return classifyError(err)
}

type pgxRows struct {
	rows pgx.Rows
}

func (r *pgxRows) Next() bool { return r.rows.Next() }
func (r *pgxRows) Close()     { r.rows.Close() }
func (r *pgxRows) Err() error { return classifyError(r.rows.Err()) }

func (r *pgxRows) Values() ([]any, error) {
	v, err := r.rows.Values()
	return v, classifyError(err)
}

var _ dexdb.Store = (*pgxStore)(nil)

package db

import (
	"context"
	"strings"

	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// echoConnector logs every statement issued through the stores it opens.
type echoConnector struct {
	next   dexdb.Connector
	logger dexdb.Logger
}

func (c *echoConnector) Connect(ctx context.Context) (dexdb.Store, error) {
	store, err := c.next.Connect(ctx)
	if err != nil {
		return nil, err
	}
	return &echoStore{Store: store, logger: c.logger}, nil
}

type echoStore struct {
	dexdb.Store
	logger dexdb.Logger
}

func (s *echoStore) Begin(ctx context.Context, opts dexdb.TxOptions) (dexdb.Tx, error) {
	if opts.ReadOnly {
		s.logger.Info("BEGIN READ ONLY")
	} else {
		s.logger.Info("BEGIN")
	}
	tx, err := s.Store.Begin(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &echoTx{next: tx, logger: s.logger}, nil
}

type echoTx struct {
	next   dexdb.Tx
	logger dexdb.Logger
}

func (t *echoTx) Exec(ctx context.Context, sql string, args ...any) error {
	t.log(sql, args)
	return t.next.Exec(ctx, sql, args...)
}

func (t *echoTx) Query(ctx context.Context, sql string, args ...any) (dexdb.Rows, error) {
	t.log(sql, args)
	return t.next.Query(ctx, sql, args...)
}

func (t *echoTx) InsertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	t.logger.Info("INSERT INTO %s (%s) -- %d rows", QuoteIdent(table), strings.Join(columns, ", "), len(rows))
	return t.next.InsertRows(ctx, table, columns, rows)
}

func (t *echoTx) Commit(ctx context.Context) error {
	t.logger.Info("COMMIT")
	return t.next.Commit(ctx)
}

func (t *echoTx) Rollback(ctx context.Context) error {
	t.logger.Info("ROLLBACK")
	return t.next.Rollback(ctx)
}

func (t *echoTx) log(sql string, args []any) {
	if len(args) == 0 {
		t.logger.Info("%s", sql)
		return
	}
	t.logger.Info("%s -- %v", sql, args)
}

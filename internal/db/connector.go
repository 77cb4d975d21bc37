package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/vvka-141/dexdb/internal/retry"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// Connection pool configuration. A sync runs one transaction at a time, so
// the pool stays small.
const (
	DefaultMaxConns        = 2
	DefaultMinConns        = 1
	DefaultMaxConnIdleTime = 30 * time.Minute
)

// NewConnector creates the Connector for target. When echo is set, every
// statement the store executes is logged at info level.
func NewConnector(target Target, logger dexdb.Logger, echo bool) (dexdb.Connector, error) {
	var c dexdb.Connector
	switch target.Dialect {
	case DialectPostgres:
		c = NewPostgresConnector(target, logger)
	case DialectSQLite:
		c = NewSQLiteConnector(target)
	default:
		return nil, fmt.Errorf("unsupported dialect %q: %w", target.Dialect, dexdb.ErrUsage)
	}
	if echo {
		c = &echoConnector{next: c, logger: logger}
	}
	return c, nil
}

func newRetryExecutor(logger dexdb.Logger) *retry.Executor {
	strategy := retry.NewExponentialBackoff(dexdb.DefaultRetryMaxAttempts,
		retry.WithInitialDelay(dexdb.DefaultRetryInitialDelay),
		retry.WithMaxDelay(dexdb.DefaultRetryMaxDelay),
	)
	executor := retry.NewExecutor(retry.NewStoreErrorClassifier(), strategy)
	if logger == nil {
		return executor
	}
	return executor.WithOnRetry(func(attempt int, err error, delay time.Duration) {
		logger.Verbose("Connection attempt %d failed (%v), retrying in %s", attempt+1, err, delay.Round(time.Millisecond))
	})
}

// PostgresConnector opens a pgx pool with automatic retry on transient failures.
type PostgresConnector struct {
	target        Target
	logger        dexdb.Logger
	retryExecutor *retry.Executor
}

// NewPostgresConnector creates a PostgresConnector using the default retry policy.
func NewPostgresConnector(target Target, logger dexdb.Logger) *PostgresConnector {
	return &PostgresConnector{target: target, logger: logger, retryExecutor: newRetryExecutor(logger)}
}

// Connect establishes and pings the pool.
func (c *PostgresConnector) Connect(ctx context.Context) (dexdb.Store, error) {
	poolConfig, err := pgxpool.ParseConfig(c.target.DSN)
	if err != nil {
		return nil, fmt.Errorf("invalid PostgreSQL connection string: %v: %w", err, dexdb.ErrUsage)
	}
	poolConfig.MaxConns = DefaultMaxConns
	poolConfig.MinConns = DefaultMinConns
	poolConfig.MaxConnIdleTime = DefaultMaxConnIdleTime
	if c.logger != nil {
		poolConfig.ConnConfig.OnNotice = noticeHandler(c.logger)
	}

	var pool *pgxpool.Pool
	err = c.retryExecutor.Execute(ctx, func(ctx context.Context) error {
		p, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			return err
		}
		pool = p
		return nil
	})
	if err != nil {
		return nil, wrapConnectionError(err, poolConfig.ConnConfig.Config, c.target.Display)
	}
	return NewPgxStore(pool, c.target.Display), nil
}

// SQLiteConnector opens a SQLite database through database/sql.
type SQLiteConnector struct {
	target        Target
	retryExecutor *retry.Executor
}

// NewSQLiteConnector creates a SQLiteConnector.
func NewSQLiteConnector(target Target) *SQLiteConnector {
	return &SQLiteConnector{target: target, retryExecutor: newRetryExecutor(nil)}
}

// Connect opens the database. The pool is limited to one connection so that
// every statement sees the same in-memory database and the same pragmas.
func (c *SQLiteConnector) Connect(ctx context.Context) (dexdb.Store, error) {
	db, err := sql.Open("sqlite", c.target.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w: %w", c.target.Display, dexdb.ErrConnectionFailed, err)
	}
	db.SetMaxOpenConns(1)

	if err := c.retryExecutor.Execute(ctx, db.PingContext); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open %s: %w: %w", c.target.Display, dexdb.ErrConnectionFailed, err)
	}
	return NewSQLStore(db, SQLite, c.target.Display), nil
}

// wrapConnectionError adds actionable guidance to a pgx connection error.
func wrapConnectionError(err error, cfg pgconn.Config, display string) error {
	errStr := strings.ToLower(err.Error())
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var hint string
	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		hint = fmt.Sprintf(`connection refused to %s

Possible causes:
  - PostgreSQL is not running (check: pg_isready -h %s -p %d)
  - Wrong host or port
  - Firewall blocking the connection`, addr, cfg.Host, cfg.Port)

	case strings.Contains(errStr, "no such host"):
		hint = fmt.Sprintf(`cannot resolve host "%s"

Possible causes:
  - Hostname is misspelled
  - DNS is not configured or reachable`, cfg.Host)

	case strings.Contains(errStr, "password authentication failed"):
		hint = fmt.Sprintf(`password authentication failed for user "%s"

Possible causes:
  - Wrong password (check the connection URI or ~/.pgpass)
  - Wrong username`, cfg.User)

	case strings.Contains(errStr, "does not exist"):
		hint = fmt.Sprintf(`database "%s" does not exist

To create it:
  createdb %s`, cfg.Database, cfg.Database)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		hint = fmt.Sprintf(`connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets`, addr)

	default:
		hint = fmt.Sprintf("failed to connect to %s", display)
	}

	return fmt.Errorf("%s\n\nOriginal error: %w: %w", hint, dexdb.ErrConnectionFailed, err)
}

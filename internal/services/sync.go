package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/vvka-141/dexdb/internal/checksum"
	"github.com/vvka-141/dexdb/internal/codec"
	"github.com/vvka-141/dexdb/internal/db"
	"github.com/vvka-141/dexdb/internal/files/filesystem"
	"github.com/vvka-141/dexdb/internal/files/loader"
	"github.com/vvka-141/dexdb/internal/files/scanner"
	"github.com/vvka-141/dexdb/internal/schema"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// ConnectorFactory builds the connector for a command's configuration.
type ConnectorFactory func(config dexdb.SyncConfig) (dexdb.Connector, error)

// SyncService implements the Syncer interface.
// Thread-Safety: NOT safe for concurrent calls on the same instance.
type SyncService struct {
	connectorFactory ConnectorFactory
	registry         *schema.Registry
	fsProvider       filesystem.FileSystemProvider
	calculator       checksum.Calculator
	approver         dexdb.Approver
	logger           dexdb.Logger
}

// NewSyncService creates a new SyncService with all dependencies injected.
// Panics on nil dependencies: these are wiring mistakes, not runtime conditions.
func NewSyncService(
	connectorFactory ConnectorFactory,
	registry *schema.Registry,
	fsProvider filesystem.FileSystemProvider,
	approver dexdb.Approver,
	logger dexdb.Logger,
) *SyncService {
	if connectorFactory == nil {
		panic("connectorFactory cannot be nil")
	}
	if registry == nil {
		panic("registry cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if approver == nil {
		panic("approver cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}

	return &SyncService{
		connectorFactory: connectorFactory,
		registry:         registry,
		fsProvider:       fsProvider,
		calculator:       checksum.New(),
		approver:         approver,
		logger:           logger,
	}
}

// tableData is one table's decoded CSV source.
type tableData struct {
	table schema.Table
	path  string
	rows  []codec.Row
}

// Load creates every table and inserts every CSV row, in dependency order.
func (s *SyncService) Load(ctx context.Context, config dexdb.SyncConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sources, err := s.readSources(config)
	if err != nil {
		return err
	}

	return s.withStore(ctx, config, func(store dexdb.Store, dialect db.Dialect) error {
		s.logger.Verbose("Loading %d tables into %s", len(sources), store.Target())
		err := s.inTx(ctx, store, dexdb.TxOptions{}, func(tx dexdb.Tx) error {
			if err := s.createTables(ctx, tx, dialect); err != nil {
				return err
			}
			return s.insertTables(ctx, tx, sources, config)
		})
		if err != nil {
			return err
		}
		s.logger.Info("✓ Loaded %d tables into %s", len(sources), store.Target())
		return nil
	})
}

// Reload drops every table in reverse dependency order and loads them again.
// Drop and load share one transaction, so a failed load restores the
// pre-reload contents on engines with transactional DDL.
func (s *SyncService) Reload(ctx context.Context, config dexdb.SyncConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	sources, err := s.readSources(config)
	if err != nil {
		return err
	}

	return s.withStore(ctx, config, func(store dexdb.Store, dialect db.Dialect) error {
		s.logger.Verbose("Requesting approval to reload %s", store.Target())
		approved, err := s.approver.RequestApproval(ctx, store.Target())
		if err != nil {
			return fmt.Errorf("approval request failed: %w", err)
		}
		if !approved {
			return dexdb.ErrApprovalDenied
		}

		err = s.inTx(ctx, store, dexdb.TxOptions{}, func(tx dexdb.Tx) error {
			if err := s.dropTables(ctx, tx, dialect); err != nil {
				return err
			}
			if err := s.createTables(ctx, tx, dialect); err != nil {
				return err
			}
			return s.insertTables(ctx, tx, sources, config)
		})
		if err != nil {
			s.logger.Error("Reload failed; the transaction was rolled back and %s keeps its previous contents", store.Target())
			return err
		}
		s.logger.Info("✓ Reloaded %d tables into %s", len(sources), store.Target())
		return nil
	})
}

// Dump rewrites every CSV file from the store's current contents, in
// declaration order. Files whose content would not change are left untouched.
func (s *SyncService) Dump(ctx context.Context, config dexdb.SyncConfig) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var contents []dumpedTable
	err := s.withStore(ctx, config, func(store dexdb.Store, dialect db.Dialect) error {
		s.logger.Verbose("Dumping %d tables from %s", s.registry.Len(), store.Target())
		return s.inTx(ctx, store, dexdb.TxOptions{ReadOnly: true}, func(tx dexdb.Tx) error {
			var err error
			contents, err = s.selectTables(ctx, tx, dialect, config)
			return err
		})
	})
	if err != nil {
		return err
	}

	return s.writeFiles(config.DataDir, contents)
}

// readSources scans the data directory and decodes every table's CSV file
// before the store is touched.
func (s *SyncService) readSources(config dexdb.SyncConfig) ([]tableData, error) {
	order := s.registry.DependencyOrder()

	result, err := scanner.NewScannerWithFS(s.calculator, s.fsProvider).ScanDataDir(config.DataDir, order)
	if err != nil {
		return nil, err
	}
	for _, orphan := range result.Orphans {
		s.logger.Verbose("Ignoring %s: no table is declared for it", filepath.Join(config.DataDir, orphan))
	}

	l := loader.NewLoader(codec.Codec{StrictBooleans: config.StrictBooleans})
	sources := make([]tableData, 0, len(order))
	for _, name := range order {
		t, _ := s.registry.Table(name)
		file, ok := result.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: table %s has no data file %s",
				dexdb.ErrSourceNotFound, name, scanner.FilePath(config.DataDir, name))
		}
		rows, err := l.Decode(file, t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", file.Path, err)
		}
		s.logger.Verbose("Read %d rows from %s (sha256 %s)", len(rows), file.Path, file.ChecksumRaw[:12])
		sources = append(sources, tableData{table: t, path: file.Path, rows: rows})
	}
	return sources, nil
}

// withStore opens the store, runs fn, and closes the store.
func (s *SyncService) withStore(ctx context.Context, config dexdb.SyncConfig, fn func(dexdb.Store, db.Dialect) error) (err error) {
	connector, err := s.connectorFactory(config)
	if err != nil {
		return fmt.Errorf("failed to create connector: %w", err)
	}

	store, err := connector.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			s.logger.Verbose("Failed to close store: %v", closeErr)
		}
	}()

	dialect, err := db.DialectFor(store.Dialect())
	if err != nil {
		return fmt.Errorf("%w: %v", dexdb.ErrUsage, err)
	}
	return fn(store, dialect)
}

// inTx runs fn in a transaction, committing on success and rolling back on
// any error. Rollback runs on a context detached from cancellation so an
// interrupted command still releases its transaction.
func (s *SyncService) inTx(ctx context.Context, store dexdb.Store, opts dexdb.TxOptions, fn func(dexdb.Tx) error) (err error) {
	tx, err := store.Begin(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			s.logger.Error("Rollback failed: %v", rbErr)
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (s *SyncService) createTables(ctx context.Context, tx dexdb.Tx, dialect db.Dialect) error {
	s.logger.Info("Creating tables...")
	for _, name := range s.registry.DependencyOrder() {
		t, _ := s.registry.Table(name)
		if err := tx.Exec(ctx, dialect.CreateTable(t)); err != nil {
			return fmt.Errorf("failed to create table %s: %w", name, err)
		}
	}
	return nil
}

func (s *SyncService) dropTables(ctx context.Context, tx dexdb.Tx, dialect db.Dialect) error {
	s.logger.Info("Dropping tables...")
	for _, name := range s.registry.ReverseDependencyOrder() {
		t, _ := s.registry.Table(name)
		if err := tx.Exec(ctx, dialect.DropTable(t)); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", name, err)
		}
	}
	return nil
}

func (s *SyncService) insertTables(ctx context.Context, tx dexdb.Tx, sources []tableData, config dexdb.SyncConfig) error {
	s.logger.Info("Loading tables...")
	l := loader.NewLoader(codec.Codec{StrictBooleans: config.StrictBooleans})
	for _, src := range sources {
		s.logger.Info("  - %s...", src.table.Name)
		n, err := l.Insert(ctx, tx, src.table, src.rows)
		if err != nil {
			return fmt.Errorf("%s: %w", src.path, err)
		}
		s.logger.Verbose("    %d rows", n)
	}
	return nil
}

// dumpedTable is one table rendered as CSV.
type dumpedTable struct {
	table   string
	path    string
	content []byte
	rows    int
}

func (s *SyncService) selectTables(ctx context.Context, tx dexdb.Tx, dialect db.Dialect, config dexdb.SyncConfig) ([]dumpedTable, error) {
	c := codec.Codec{StrictBooleans: config.StrictBooleans}
	tables := s.registry.Tables()
	out := make([]dumpedTable, 0, len(tables))

	s.logger.Info("Dumping tables...")
	for _, t := range tables {
		s.logger.Info("  - %s...", t.Name)
		rows, err := s.selectRows(ctx, tx, dialect, t)
		if err != nil {
			return nil, err
		}

		var buf bytes.Buffer
		if err := c.WriteTable(&buf, t, rows); err != nil {
			return nil, err
		}
		out = append(out, dumpedTable{
			table:   t.Name,
			path:    scanner.FilePath(config.DataDir, t.Name),
			content: buf.Bytes(),
			rows:    len(rows),
		})
	}
	return out, nil
}

func (s *SyncService) selectRows(ctx context.Context, tx dexdb.Tx, dialect db.Dialect, t schema.Table) ([]codec.Row, error) {
	result, err := tx.Query(ctx, dialect.SelectAll(t))
	if err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", t.Name, err)
	}
	defer result.Close()

	var rows []codec.Row
	for result.Next() {
		values, err := result.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read table %s: %w", t.Name, err)
		}
		row, err := codec.NormalizeRow(t, values)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", t.Name, err)
	}
	return rows, nil
}

// writeFiles replaces each table's file whose content changed. Every file is
// replaced atomically; a failure part way leaves earlier files rewritten.
func (s *SyncService) writeFiles(dir string, tables []dumpedTable) error {
	if err := s.fsProvider.MkdirAll(dir); err != nil {
		return fmt.Errorf("%w: failed to create %s: %v", dexdb.ErrWriteFailed, dir, err)
	}

	names := make([]string, len(tables))
	for i, t := range tables {
		names[i] = t.table
	}
	existing, err := scanner.NewScannerWithFS(s.calculator, s.fsProvider).ScanDataDir(dir, names)
	if err != nil {
		return err
	}

	var written, unchanged int
	for _, t := range tables {
		status := "created"
		if old, ok := existing.Lookup(t.table); ok {
			switch {
			case old.ChecksumRaw == s.calculator.CalculateRaw(t.content):
				s.logger.Verbose("%s unchanged (%d rows)", t.path, t.rows)
				unchanged++
				continue
			case old.Checksum == s.calculator.CalculateNormalized(t.content):
				status = "reformatted"
			default:
				status = "updated"
			}
		}

		if err := s.fsProvider.WriteFileAtomic(t.path, t.content); err != nil {
			if errors.Is(err, dexdb.ErrIO) {
				return err
			}
			return fmt.Errorf("%w: %s: %v", dexdb.ErrWriteFailed, t.path, err)
		}
		s.logger.Verbose("%s %s (%d rows)", t.path, status, t.rows)
		written++
	}

	s.logger.Info("✓ Dumped %d tables to %s (%d written, %d unchanged)", len(tables), dir, written, unchanged)
	return nil
}

// Verify SyncService implements the Syncer interface at compile time
var _ dexdb.Syncer = (*SyncService)(nil)

package services

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vvka-141/dexdb/internal/catalog"
	"github.com/vvka-141/dexdb/internal/db"
	"github.com/vvka-141/dexdb/internal/files/filesystem"
	"github.com/vvka-141/dexdb/internal/logging"
	"github.com/vvka-141/dexdb/internal/schema"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

const dataDir = "/work/data"

type mockApprover struct {
	mu       sync.Mutex
	approved bool
	err      error
	targets  []string
}

func (m *mockApprover) RequestApproval(_ context.Context, target string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.targets = append(m.targets, target)
	return m.approved, m.err
}

// storeConnector hands out a fixed store.
type storeConnector struct {
	store dexdb.Store
	err   error
}

func (c *storeConnector) Connect(context.Context) (dexdb.Store, error) {
	return c.store, c.err
}

// realConnectors opens the store named by the config's target.
func realConnectors(logger dexdb.Logger, calls *int) ConnectorFactory {
	return func(config dexdb.SyncConfig) (dexdb.Connector, error) {
		if calls != nil {
			*calls++
		}
		target, err := db.ParseTarget(config.Target)
		if err != nil {
			return nil, err
		}
		return db.NewConnector(target, logger, config.EchoSQL)
	}
}

// shippedData copies the repository's data directory into an in-memory filesystem.
func shippedData(t *testing.T) *filesystem.MemoryFileSystem {
	t.Helper()
	mfs := filesystem.NewMemoryFileSystem("/work")
	for _, name := range catalog.NewRegistry().DependencyOrder() {
		content, err := os.ReadFile(filepath.Join("..", "..", "data", name+dexdb.DataFileExtension))
		require.NoError(t, err)
		mfs.AddFile(filepath.Join(dataDir, name+dexdb.DataFileExtension), string(content))
	}
	return mfs
}

func readData(t *testing.T, fsys filesystem.FileSystemProvider, dir, table string) string {
	t.Helper()
	content, err := fsys.ReadFile(filepath.Join(dir, table+dexdb.DataFileExtension))
	require.NoError(t, err)
	return string(content)
}

func sqliteTarget(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "dex.db")
}

type fixture struct {
	svc      *SyncService
	fs       *filesystem.MemoryFileSystem
	logger   *logging.RecordingLogger
	approver *mockApprover
	connects int
}

func newFixture(t *testing.T, registry *schema.Registry, fsys *filesystem.MemoryFileSystem) *fixture {
	t.Helper()
	f := &fixture{
		fs:       fsys,
		logger:   logging.NewRecordingLogger(),
		approver: &mockApprover{approved: true},
	}
	f.svc = NewSyncService(realConnectors(f.logger, &f.connects), registry, fsys, f.approver, f.logger)
	return f
}

func config(target, dir string) dexdb.SyncConfig {
	return dexdb.SyncConfig{Target: target, DataDir: dir}
}

// countTables returns the number of user tables in the SQLite file at path.
func countTables(t *testing.T, path string) int {
	t.Helper()
	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()

	var n int
	require.NoError(t, conn.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table'`).Scan(&n))
	return n
}

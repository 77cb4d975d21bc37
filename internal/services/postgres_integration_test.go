package services

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dexdb/internal/catalog"
	testhelpers "github.com/vvka-141/dexdb/internal/testing"
	"github.com/vvka-141/dexdb/internal/testing/fixtures"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// postgresTarget creates a fresh database on the test server and returns its
// connection string. Skips in -short mode or without a server.
func postgresTarget(t *testing.T) string {
	t.Helper()
	connString := testhelpers.RequireDatabase(t)
	name := "dexdb_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	return testhelpers.CreateTestDB(t, connString, name)
}

func TestPostgres_LoadThenDumpReproducesSources(t *testing.T) {
	ctx := context.Background()
	target := postgresTarget(t)
	f := newFixture(t, catalog.NewRegistry(), shippedData(t))

	require.NoError(t, f.svc.Load(ctx, config(target, dataDir)))
	require.NoError(t, f.svc.Dump(ctx, config(target, "/work/out")))

	for _, name := range catalog.NewRegistry().DependencyOrder() {
		assert.Equal(t, readData(t, f.fs, dataDir, name), readData(t, f.fs, "/work/out", name), name)
	}

	pool := testhelpers.GetTestPool(t, target)
	var games int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM games`).Scan(&games))
	assert.Equal(t, strings.Count(readData(t, f.fs, dataDir, "games"), "\n")-1, games)
}

func TestPostgres_LoadTwiceViolatesPrimaryKey(t *testing.T) {
	ctx := context.Background()
	target := postgresTarget(t)
	f := newFixture(t, catalog.NewRegistry(), fixtures.MinimalCatalog(dataDir).Build())

	require.NoError(t, f.svc.Load(ctx, config(target, dataDir)))

	err := f.svc.Load(ctx, config(target, dataDir))
	require.Error(t, err)
	assert.ErrorIs(t, err, dexdb.ErrConstraintViolation)
	assert.Equal(t, dexdb.ExitStoreError, dexdb.ExitCodeForError(err))

	// CREATE TABLE IF NOT EXISTS reports existing tables as server notices.
	assert.Contains(t, f.logger.VerboseLines(), `NOTICE: relation "languages" already exists, skipping`)

	pool := testhelpers.GetTestPool(t, target)
	var languages int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM languages`).Scan(&languages))
	assert.Equal(t, 2, languages)
}

func TestPostgres_ReloadReplacesContents(t *testing.T) {
	ctx := context.Background()
	target := postgresTarget(t)

	full := newFixture(t, catalog.NewRegistry(), shippedData(t))
	require.NoError(t, full.svc.Load(ctx, config(target, dataDir)))

	minimal := newFixture(t, catalog.NewRegistry(), fixtures.MinimalCatalog(dataDir).Build())
	require.NoError(t, minimal.svc.Reload(ctx, config(target, dataDir)))
	assert.Len(t, minimal.approver.targets, 1)

	require.NoError(t, minimal.svc.Dump(ctx, config(target, "/work/out")))
	for _, name := range catalog.NewRegistry().DependencyOrder() {
		assert.Equal(t, readData(t, minimal.fs, dataDir, name), readData(t, minimal.fs, "/work/out", name), name)
	}
}

func TestPostgres_DumpTwiceSkipsUnchanged(t *testing.T) {
	ctx := context.Background()
	target := postgresTarget(t)
	f := newFixture(t, catalog.NewRegistry(), fixtures.MinimalCatalog(dataDir).Build())

	require.NoError(t, f.svc.Load(ctx, config(target, dataDir)))
	require.NoError(t, f.svc.Dump(ctx, config(target, dataDir)))

	lines := f.logger.Lines()
	assert.Contains(t, lines[len(lines)-1], "(0 written, 5 unchanged)")
	assert.Equal(t, 0, f.fs.WriteCount(dataDir+"/games.csv"))
}

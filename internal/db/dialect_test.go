package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dexdb/internal/catalog"
	"github.com/vvka-141/dexdb/internal/schema"
)

func TestDialect_CreateTable(t *testing.T) {
	games, ok := catalog.NewRegistry().Table("games")
	require.True(t, ok)

	assert.Equal(t, `CREATE TABLE IF NOT EXISTS "games" (
	"id" BIGINT NOT NULL,
	"identifier" TEXT NOT NULL UNIQUE,
	"generation_id" BIGINT NOT NULL,
	"platform" TEXT CHECK ("platform" IN ('game-boy', 'game-boy-color', 'game-boy-advance', 'nintendo-ds', 'nintendo-3ds', 'nintendo-switch')),
	PRIMARY KEY ("id"),
	UNIQUE ("id", "generation_id"),
	FOREIGN KEY ("generation_id") REFERENCES "generations" ("id")
)`, Postgres.CreateTable(games))
}

func TestDialect_CreateTable_SQLiteTypes(t *testing.T) {
	tbl := schema.Table{
		Name: "flags",
		Columns: []schema.Column{
			{Name: "id", Type: schema.Integer},
			{Name: "on", Type: schema.Boolean, Nullable: true},
			{Name: "it's", Type: schema.Unicode},
		},
		PrimaryKey: []string{"id"},
	}

	assert.Equal(t, `CREATE TABLE IF NOT EXISTS "flags" (
	"id" INTEGER NOT NULL,
	"on" BLOB,
	"it's" TEXT NOT NULL,
	PRIMARY KEY ("id")
)`, SQLite.CreateTable(tbl))
}

func TestDialect_SelectAll(t *testing.T) {
	names, ok := catalog.NewRegistry().Table("generation_names")
	require.True(t, ok)

	assert.Equal(t,
		`SELECT "language_id", "generation_id", "name" FROM "generation_names" ORDER BY "language_id", "generation_id"`,
		SQLite.SelectAll(names))
}

func TestDialect_Insert(t *testing.T) {
	cols := []string{"id", "name"}

	assert.Equal(t, `INSERT INTO "t" ("id", "name") VALUES ($1, $2), ($3, $4)`, Postgres.Insert("t", cols, 2))
	assert.Equal(t, `INSERT INTO "t" ("id", "name") VALUES (?, ?), (?, ?), (?, ?)`, SQLite.Insert("t", cols, 3))
}

func TestDialect_DropTable(t *testing.T) {
	assert.Equal(t, `DROP TABLE IF EXISTS "games"`, Postgres.DropTable(catalog.Games))
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"plain"`, QuoteIdent("plain"))
	assert.Equal(t, `"say ""hi"""`, QuoteIdent(`say "hi"`))
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, DialectSQLite, d.Name)

	_, err = DialectFor("oracle")
	assert.Error(t, err)
}

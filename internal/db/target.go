package db

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/vvka-141/dexdb/internal/config"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// Supported dialects.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// Target is a parsed connection target.
type Target struct {
	// Dialect is DialectPostgres or DialectSQLite.
	Dialect string

	// DSN is the string handed to the driver.
	DSN string

	// Display describes the target with credentials redacted.
	Display string
}

// EnvVars holds the environment variables that can supply a connection target.
type EnvVars struct {
	DEXDB_DATABASE_URL string
	DATABASE_URL       string // Heroku/Rails convention
}

// LoadFromEnvironment reads the connection target variables.
func LoadFromEnvironment() *EnvVars {
	return &EnvVars{
		DEXDB_DATABASE_URL: os.Getenv("DEXDB_DATABASE_URL"),
		DATABASE_URL:       os.Getenv("DATABASE_URL"),
	}
}

// ResolveTarget picks the connection target using this precedence:
//
// 1. The positional command-line argument
// 2. $DEXDB_DATABASE_URL
// 3. $DATABASE_URL
// 4. connection: in dexdb.yaml
//
// It fails with dexdb.ErrUsage if no source provides a target.
func ResolveTarget(arg string, env *EnvVars, projectConfig *config.ProjectConfig) (Target, error) {
	raw := arg
	if raw == "" && env != nil {
		raw = env.DEXDB_DATABASE_URL
		if raw == "" {
			raw = env.DATABASE_URL
		}
	}
	if raw == "" && projectConfig != nil {
		raw = projectConfig.Connection
	}
	if raw == "" {
		return Target{}, fmt.Errorf(`no connection target given

Provide one of:
  - a positional argument:  dexdb load sqlite://dex.db
  - $DEXDB_DATABASE_URL or $DATABASE_URL
  - connection: in %s

%w`, config.ConfigFileName, dexdb.ErrUsage)
	}
	return ParseTarget(raw)
}

// ParseTarget recognizes the supported connection target forms:
//
//   - postgres://... and postgresql://... (PostgreSQL via pgx)
//   - sqlite://<path>, sqlite:<path>, file:<path>, :memory:, and bare paths
//     ending in .db, .sqlite or .sqlite3 (SQLite)
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)

	switch {
	case raw == "":
		return Target{}, fmt.Errorf("connection target is empty: %w", dexdb.ErrUsage)

	case strings.HasPrefix(raw, "postgres://"), strings.HasPrefix(raw, "postgresql://"):
		u, err := url.Parse(raw)
		if err != nil {
			return Target{}, fmt.Errorf("invalid PostgreSQL URI: %w", dexdb.ErrUsage)
		}
		return Target{Dialect: DialectPostgres, DSN: raw, Display: u.Redacted()}, nil

	case raw == ":memory:":
		return sqliteTarget("file::memory:", ":memory:"), nil

	case strings.HasPrefix(raw, "sqlite://"):
		return sqliteFromPath(strings.TrimPrefix(raw, "sqlite://"))

	case strings.HasPrefix(raw, "sqlite:"):
		return sqliteFromPath(strings.TrimPrefix(raw, "sqlite:"))

	case strings.HasPrefix(raw, "file:"):
		path, _, _ := strings.Cut(strings.TrimPrefix(raw, "file:"), "?")
		return sqliteTarget(raw, path), nil
	}

	switch strings.ToLower(filepath.Ext(raw)) {
	case ".db", ".sqlite", ".sqlite3":
		return sqliteFromPath(raw)
	}

	return Target{}, fmt.Errorf(`unrecognized connection target %q

Supported forms:
  postgres://user@host:5432/dbname
  sqlite://path/to/dex.db   (or a path ending in .db, .sqlite, .sqlite3)
  :memory:

%w`, raw, dexdb.ErrUsage)
}

func sqliteFromPath(path string) (Target, error) {
	if path == "" {
		return Target{}, fmt.Errorf("sqlite target has no path: %w", dexdb.ErrUsage)
	}
	if path == ":memory:" {
		return sqliteTarget("file::memory:", ":memory:"), nil
	}
	return sqliteTarget("file:"+path, path), nil
}

func sqliteTarget(dsn, display string) Target {
	return Target{Dialect: DialectSQLite, DSN: withForeignKeys(dsn), Display: "sqlite:" + display}
}

// withForeignKeys turns on foreign key enforcement, which SQLite leaves off
// for every new connection.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

package db

import (
	"fmt"
	"strings"

	"github.com/vvka-141/dexdb/internal/schema"
)

// Dialect renders the statements the sync engine issues. PostgreSQL and
// SQLite agree on everything except column types and bind placeholders.
type Dialect struct {
	Name string

	// placeholder returns the bind marker for the n-th (1-based) argument.
	placeholder func(n int) string
	columnType  func(t schema.Type) string
}

// Postgres is the PostgreSQL dialect.
var Postgres = Dialect{
	Name:        DialectPostgres,
	placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	columnType: func(t schema.Type) string {
		switch t {
		case schema.Integer:
			return "BIGINT"
		case schema.Boolean:
			return "BOOLEAN"
		default:
			return "TEXT"
		}
	},
}

// SQLite is the SQLite dialect.
var SQLite = Dialect{
	Name:        DialectSQLite,
	placeholder: func(int) string { return "?" },
	columnType: func(t schema.Type) string {
		switch t {
		case schema.Integer:
			return "INTEGER"
		case schema.Boolean:
			// BLOB affinity: bound bools stay 0/1 and passthrough text stays text.
			// A BOOLEAN declaration has NUMERIC affinity and would turn "1" into 1.
			return "BLOB"
		default:
			return "TEXT"
		}
	},
}

// DialectFor returns the dialect with the given name.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case DialectPostgres:
		return Postgres, nil
	case DialectSQLite:
		return SQLite, nil
	default:
		return Dialect{}, fmt.Errorf("unsupported dialect %q", name)
	}
}

// QuoteIdent quotes an SQL identifier.
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = QuoteIdent(n)
	}
	return strings.Join(quoted, ", ")
}

// CreateTable renders CREATE TABLE IF NOT EXISTS for t, with its primary key,
// unique constraints, foreign keys, and membership checks for enum columns
// that list their values.
func (d Dialect) CreateTable(t schema.Table) string {
	var defs []string
	for _, c := range t.Columns {
		def := QuoteIdent(c.Name) + " " + d.columnType(c.Type)
		if !c.Nullable {
			def += " NOT NULL"
		}
		if c.Unique {
			def += " UNIQUE"
		}
		if c.Type == schema.Enum && len(c.Values) > 0 {
			values := make([]string, len(c.Values))
			for i, v := range c.Values {
				values[i] = quoteLiteral(v)
			}
			def += fmt.Sprintf(" CHECK (%s IN (%s))", QuoteIdent(c.Name), strings.Join(values, ", "))
		}
		defs = append(defs, def)
	}

	defs = append(defs, fmt.Sprintf("PRIMARY KEY (%s)", quoteList(t.PrimaryKey)))
	for _, u := range t.Unique {
		defs = append(defs, fmt.Sprintf("UNIQUE (%s)", quoteList(u)))
	}
	for _, fk := range t.ForeignKeys {
		defs = append(defs, fmt.Sprintf("FOREIGN KEY (%s) REFERENCES %s (%s)",
			QuoteIdent(fk.Column), QuoteIdent(fk.RefTable), QuoteIdent(fk.RefColumn)))
	}

	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", QuoteIdent(t.Name), strings.Join(defs, ",\n\t"))
}

// DropTable renders DROP TABLE IF EXISTS for t.
func (d Dialect) DropTable(t schema.Table) string {
	return "DROP TABLE IF EXISTS " + QuoteIdent(t.Name)
}

// SelectAll renders a query returning every row of t, columns in declared
// order, sorted ascending by primary key.
func (d Dialect) SelectAll(t schema.Table) string {
	return fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		quoteList(t.ColumnNames()), QuoteIdent(t.Name), quoteList(t.PrimaryKey))
}

// Insert renders a multi-row INSERT of rows records into table.
func (d Dialect) Insert(table string, columns []string, rows int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INSERT INTO %s (%s) VALUES ", QuoteIdent(table), quoteList(columns))
	n := 1
	for r := range rows {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := range columns {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.placeholder(n))
			n++
		}
		b.WriteByte(')')
	}
	return b.String()
}

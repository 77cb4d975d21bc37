// Package schema holds the declarative table metadata that drives load, reload
// and dump: tables, their ordered columns, keys and foreign keys, and the
// Registry that validates them and derives a deterministic dependency order.
package schema

import "fmt"

// Type is the semantic type tag of a column.
type Type int

const (
	Integer Type = iota // 64-bit signed integer
	Text                // free text
	Unicode             // identifier-like text
	Boolean             // True/False
	Enum                // text restricted to Column.Values when they are declared
)

// String returns a human-readable name for the type.
func (t Type) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Text:
		return "Text"
	case Unicode:
		return "Unicode"
	case Boolean:
		return "Boolean"
	case Enum:
		return "Enum"
	default:
		return fmt.Sprintf("Unknown(%d)", int(t))
	}
}

// IsValid returns true if the Type is a defined value.
func (t Type) IsValid() bool {
	return t >= Integer && t <= Enum
}

// Column describes one column of a table.
type Column struct {
	Name     string
	Type     Type
	Nullable bool
	Unique   bool     // single-column uniqueness; composite keys go in Table.Unique
	Values   []string // allowed members of an Enum column; empty means unrestricted

	// References declares a single-column foreign key inline, in "table.column"
	// form. The registry folds it into Table.ForeignKeys.
	References string
}

// ForeignKey is a single-column foreign key edge.
type ForeignKey struct {
	Column    string
	RefTable  string
	RefColumn string
}

func (fk ForeignKey) String() string {
	return fmt.Sprintf("%s -> %s.%s", fk.Column, fk.RefTable, fk.RefColumn)
}

// Table describes a table. Column order is the canonical CSV header order.
type Table struct {
	Name        string
	Columns     []Column
	PrimaryKey  []string
	ForeignKeys []ForeignKey
	Unique      [][]string // composite unique constraints

	// Localized marks the table as a localizable entity; the registry then
	// generates its per-language name table.
	Localized *Localized
}

// ColumnNames returns the column names in declared order.
func (t Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column returns the column with the given name.
func (t Table) Column(name string) (Column, bool) {
	i := t.ColumnIndex(name)
	if i < 0 {
		return Column{}, false
	}
	return t.Columns[i], true
}

// ColumnIndex returns the position of the named column, or -1.
func (t Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// References returns the distinct tables this table's foreign keys point to,
// in declaration order.
func (t Table) References() []string {
	var refs []string
	seen := make(map[string]bool)
	for _, fk := range t.ForeignKeys {
		if !seen[fk.RefTable] {
			seen[fk.RefTable] = true
			refs = append(refs, fk.RefTable)
		}
	}
	return refs
}

// clone returns a deep copy so registry contents cannot be mutated through
// slices shared with the caller.
func (t Table) clone() Table {
	out := t
	out.Columns = make([]Column, len(t.Columns))
	for i, c := range t.Columns {
		c.Values = append([]string(nil), c.Values...)
		out.Columns[i] = c
	}
	out.PrimaryKey = append([]string(nil), t.PrimaryKey...)
	out.ForeignKeys = append([]ForeignKey(nil), t.ForeignKeys...)
	out.Unique = make([][]string, len(t.Unique))
	for i, u := range t.Unique {
		out.Unique[i] = append([]string(nil), u...)
	}
	if t.Localized != nil {
		l := *t.Localized
		out.Localized = &l
	}
	return out
}

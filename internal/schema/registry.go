package schema

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/vvka-141/dexdb/internal/dag"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// Registry is an immutable, validated set of table descriptors together with
// the dependency order derived from their foreign keys.
//
// A Registry is safe for concurrent use: nothing mutates it after NewRegistry
// returns, and every accessor hands out copies.
type Registry struct {
	tables []Table
	byName map[string]int
	order  []string
}

// NewRegistry validates tables, expands localized entities into their name
// tables and computes the dependency order. Cycles in the foreign-key graph
// are reported as *dexdb.CyclicSchemaError.
func NewRegistry(tables ...Table) (*Registry, error) {
	r := &Registry{byName: make(map[string]int)}

	for _, t := range tables {
		t = t.clone()
		if err := foldInlineReferences(&t); err != nil {
			return nil, err
		}
		if err := r.add(t); err != nil {
			return nil, err
		}
		if t.Localized != nil {
			if err := r.add(NamesTable(t)); err != nil {
				return nil, err
			}
		}
	}

	var errs []error
	for _, t := range r.tables {
		errs = append(errs, validateTable(t))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	for _, t := range r.tables {
		if err := r.checkReferences(t); err != nil {
			return nil, err
		}
	}

	order, err := r.sort()
	if err != nil {
		return nil, err
	}
	r.order = order
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error. It is meant for
// schemas compiled into the binary, where an invalid declaration is a bug.
func MustRegistry(tables ...Table) *Registry {
	r, err := NewRegistry(tables...)
	if err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
	return r
}

func (r *Registry) add(t Table) error {
	if t.Name == "" {
		return fmt.Errorf("%w: table with empty name", dexdb.ErrInvalidSchema)
	}
	if _, dup := r.byName[t.Name]; dup {
		return fmt.Errorf("%w: duplicate table %q", dexdb.ErrInvalidSchema, t.Name)
	}
	r.byName[t.Name] = len(r.tables)
	r.tables = append(r.tables, t)
	return nil
}

// foldInlineReferences moves Column.References declarations into ForeignKeys.
func foldInlineReferences(t *Table) error {
	for _, c := range t.Columns {
		if c.References == "" {
			continue
		}
		refTable, refColumn, ok := strings.Cut(c.References, ".")
		if !ok || refTable == "" || refColumn == "" {
			return fmt.Errorf("%w: %s.%s references %q, want \"table.column\"",
				dexdb.ErrInvalidSchema, t.Name, c.Name, c.References)
		}
		fk := ForeignKey{Column: c.Name, RefTable: refTable, RefColumn: refColumn}
		if !slices.Contains(t.ForeignKeys, fk) {
			t.ForeignKeys = append(t.ForeignKeys, fk)
		}
	}
	return nil
}

func validateTable(t Table) error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: table %q: %s", dexdb.ErrInvalidSchema, t.Name, fmt.Sprintf(format, args...)))
	}

	if len(t.Columns) == 0 {
		fail("no columns")
	}
	seen := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		switch {
		case c.Name == "":
			fail("column with empty name")
		case seen[c.Name]:
			fail("duplicate column %q", c.Name)
		case !c.Type.IsValid():
			fail("column %q has invalid type %s", c.Name, c.Type)
		case len(c.Values) > 0 && c.Type != Enum:
			fail("column %q lists values but is %s, not Enum", c.Name, c.Type)
		}
		seen[c.Name] = true
	}

	if len(t.PrimaryKey) == 0 {
		fail("no primary key")
	}
	for _, name := range t.PrimaryKey {
		c, ok := t.Column(name)
		if !ok {
			fail("primary key names unknown column %q", name)
		} else if c.Nullable {
			fail("primary key column %q is nullable", name)
		}
	}
	for _, u := range t.Unique {
		if len(u) == 0 {
			fail("empty unique constraint")
		}
		for _, name := range u {
			if !seen[name] {
				fail("unique constraint names unknown column %q", name)
			}
		}
	}
	for _, fk := range t.ForeignKeys {
		if !seen[fk.Column] {
			fail("foreign key %s names unknown column %q", fk, fk.Column)
		}
	}
	return errors.Join(errs...)
}

func (r *Registry) checkReferences(t Table) error {
	for _, fk := range t.ForeignKeys {
		i, ok := r.byName[fk.RefTable]
		if !ok {
			return fmt.Errorf("%w: %s.%s references unknown table %q",
				dexdb.ErrUnknownReference, t.Name, fk.Column, fk.RefTable)
		}
		if _, ok := r.tables[i].Column(fk.RefColumn); !ok {
			return fmt.Errorf("%w: %s.%s references unknown column %s.%s",
				dexdb.ErrUnknownReference, t.Name, fk.Column, fk.RefTable, fk.RefColumn)
		}
	}
	return nil
}

// sort builds the foreign-key graph, with an edge from every referenced table
// to the table referencing it, and returns its topological order.
func (r *Registry) sort() ([]string, error) {
	g := dag.NewGraph()
	for _, t := range r.tables {
		g.AddNode(t.Name)
	}
	for _, t := range r.tables {
		for _, ref := range t.References() {
			if err := g.AddEdge(ref, t.Name); err != nil {
				return nil, fmt.Errorf("%w: %v", dexdb.ErrUnknownReference, err)
			}
		}
	}

	order, err := g.TopologicalSort()
	if err != nil {
		var cycle *dag.CycleError
		if errors.As(err, &cycle) {
			return nil, &dexdb.CyclicSchemaError{Tables: cycle.Nodes}
		}
		return nil, err
	}
	return order, nil
}

// Tables returns all table descriptors in declaration order. Generated name
// tables follow the entity they localize.
func (r *Registry) Tables() []Table {
	out := make([]Table, len(r.tables))
	for i, t := range r.tables {
		out[i] = t.clone()
	}
	return out
}

// Table returns the descriptor for name.
func (r *Registry) Table(name string) (Table, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Table{}, false
	}
	return r.tables[i].clone(), true
}

// Len returns the number of tables, including generated ones.
func (r *Registry) Len() int {
	return len(r.tables)
}

// DependencyOrder returns table names such that every table follows all the
// tables it references. Tables with no ordering constraint between them are
// ordered alphabetically.
func (r *Registry) DependencyOrder() []string {
	return slices.Clone(r.order)
}

// ReverseDependencyOrder returns DependencyOrder reversed, the order in
// which tables can be dropped.
func (r *Registry) ReverseDependencyOrder() []string {
	out := slices.Clone(r.order)
	slices.Reverse(out)
	return out
}

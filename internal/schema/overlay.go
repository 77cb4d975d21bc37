package schema

import "strings"

// LanguageTable is the table every localized name table references.
const LanguageTable = "languages"

// Localized marks an entity table as localizable. Zero-valued fields are
// derived from the entity table's name: "generations" produces the table
// "generation_names" with entity column "generation_id".
type Localized struct {
	Table        string
	EntityColumn string
}

// singular strips a trailing plural "s" from a table name.
func singular(name string) string {
	switch {
	case strings.HasSuffix(name, "ies"):
		return strings.TrimSuffix(name, "ies") + "y"
	case strings.HasSuffix(name, "s") && !strings.HasSuffix(name, "ss"):
		return strings.TrimSuffix(name, "s")
	default:
		return name
	}
}

// NamesTable builds the per-language name table for entity. The generated
// table has a composite primary key (language_id, <entity>_id) and forbids
// two entities of the same language from sharing a name.
func NamesTable(entity Table) Table {
	var l Localized
	if entity.Localized != nil {
		l = *entity.Localized
	}
	base := singular(entity.Name)
	if l.Table == "" {
		l.Table = base + "_names"
	}
	if l.EntityColumn == "" {
		l.EntityColumn = base + "_id"
	}

	return Table{
		Name: l.Table,
		Columns: []Column{
			{Name: "language_id", Type: Integer},
			{Name: l.EntityColumn, Type: Integer},
			{Name: "name", Type: Text},
		},
		PrimaryKey: []string{"language_id", l.EntityColumn},
		ForeignKeys: []ForeignKey{
			{Column: "language_id", RefTable: LanguageTable, RefColumn: "id"},
			{Column: l.EntityColumn, RefTable: entity.Name, RefColumn: "id"},
		},
		Unique: [][]string{{"language_id", "name"}},
	}
}

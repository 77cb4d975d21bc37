package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dexdb/pkg/dexdb"
)

func languages() Table {
	return Table{
		Name: LanguageTable,
		Columns: []Column{
			{Name: "id", Type: Integer},
			{Name: "identifier", Type: Unicode, Unique: true},
		},
		PrimaryKey: []string{"id"},
	}
}

func TestNamesTable_Defaults(t *testing.T) {
	entity := idTable("generations")
	entity.Localized = &Localized{}

	got := NamesTable(entity)

	assert.Equal(t, "generation_names", got.Name)
	assert.Equal(t, []string{"language_id", "generation_id", "name"}, got.ColumnNames())
	assert.Equal(t, []string{"language_id", "generation_id"}, got.PrimaryKey)
	assert.Equal(t, []ForeignKey{
		{Column: "language_id", RefTable: "languages", RefColumn: "id"},
		{Column: "generation_id", RefTable: "generations", RefColumn: "id"},
	}, got.ForeignKeys)
	assert.Equal(t, [][]string{{"language_id", "name"}}, got.Unique)

	name, ok := got.Column("name")
	require.True(t, ok)
	assert.Equal(t, Text, name.Type)
	assert.False(t, name.Nullable)
}

func TestNamesTable_Overrides(t *testing.T) {
	entity := idTable("pokemon_species")
	entity.Localized = &Localized{Table: "species_names", EntityColumn: "species_id"}

	got := NamesTable(entity)

	assert.Equal(t, "species_names", got.Name)
	assert.Equal(t, []string{"language_id", "species_id"}, got.PrimaryKey)
}

func TestSingular(t *testing.T) {
	tests := map[string]string{
		"generations": "generation",
		"abilities":   "ability",
		"moves":       "move",
		"pokemon":     "pokemon",
		"classes":     "classe",
		"grass":       "grass",
	}
	for in, want := range tests {
		assert.Equal(t, want, singular(in), in)
	}
}

func TestRegistry_ExpandsLocalizedEntities(t *testing.T) {
	generations := idTable("generations")
	generations.Localized = &Localized{}

	r, err := NewRegistry(generations, languages())
	require.NoError(t, err)

	names := make([]string, 0, r.Len())
	for _, tbl := range r.Tables() {
		names = append(names, tbl.Name)
	}
	assert.Equal(t, []string{"generations", "generation_names", "languages"}, names)
	assert.Equal(t, []string{"generations", "languages", "generation_names"}, r.DependencyOrder())
}

func TestRegistry_LocalizedWithoutLanguages(t *testing.T) {
	generations := idTable("generations")
	generations.Localized = &Localized{}

	_, err := NewRegistry(generations)
	assert.ErrorIs(t, err, dexdb.ErrUnknownReference)
}

func TestRegistry_LocalizedNameCollision(t *testing.T) {
	generations := idTable("generations")
	generations.Localized = &Localized{}

	_, err := NewRegistry(languages(), generations, idTable("generation_names"))
	assert.ErrorIs(t, err, dexdb.ErrInvalidSchema)
}

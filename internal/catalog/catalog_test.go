package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dexdb/internal/codec"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, []string{
		"languages",
		"type_charts",
		"generations",
		"games",
		"generation_names",
	}, r.DependencyOrder())

	names := make([]string, 0, r.Len())
	for _, tbl := range r.Tables() {
		names = append(names, tbl.Name)
	}
	assert.Equal(t, []string{"languages", "type_charts", "generations", "generation_names", "games"}, names)
}

func TestGenerationNames(t *testing.T) {
	tbl, ok := NewRegistry().Table("generation_names")
	require.True(t, ok)

	assert.Equal(t, []string{"language_id", "generation_id", "name"}, tbl.ColumnNames())
	assert.Equal(t, []string{"language_id", "generation_id"}, tbl.PrimaryKey)
	assert.Equal(t, [][]string{{"language_id", "name"}}, tbl.Unique)
}

// The shipped data files must decode against the schema they are loaded with.
func TestShippedDataDecodes(t *testing.T) {
	dataDir := filepath.Join("..", "..", "data")
	c := codec.Codec{StrictBooleans: true}

	for _, tbl := range NewRegistry().Tables() {
		t.Run(tbl.Name, func(t *testing.T) {
			f, err := os.Open(filepath.Join(dataDir, tbl.Name+".csv"))
			require.NoError(t, err)
			defer f.Close()

			rows, err := c.ReadTable(f, tbl)
			require.NoError(t, err)
			assert.NotEmpty(t, rows)
		})
	}
}

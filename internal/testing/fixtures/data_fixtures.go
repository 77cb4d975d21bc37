// Package fixtures builds in-memory data directories for sync tests.
package fixtures

import (
	"path/filepath"
	"strings"

	"github.com/vvka-141/dexdb/internal/files/filesystem"
)

// DataDirBuilder provides a fluent API for building a data directory of CSV
// files on an in-memory filesystem.
//
// Example usage:
//
//	fsys := NewDataDirBuilder("/work/data").
//	    AddTable("type_charts", "id,identifier", "1,gen1").
//	    Build()
type DataDirBuilder struct {
	dir   string
	files map[string]string // file name -> content
}

// NewDataDirBuilder creates a builder for the data directory dir, which must
// be absolute.
func NewDataDirBuilder(dir string) *DataDirBuilder {
	return &DataDirBuilder{dir: dir, files: make(map[string]string)}
}

// Dir returns the data directory the builder writes to.
func (b *DataDirBuilder) Dir() string {
	return b.dir
}

// AddTable adds <table>.csv with header and one line per row, each line
// terminated by a newline.
func (b *DataDirBuilder) AddTable(table, header string, rows ...string) *DataDirBuilder {
	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteByte('\n')
	for _, row := range rows {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	b.files[table+".csv"] = sb.String()
	return b
}

// AddFile adds an arbitrary file to the data directory.
func (b *DataDirBuilder) AddFile(name, content string) *DataDirBuilder {
	b.files[name] = content
	return b
}

// Without removes a previously added file.
func (b *DataDirBuilder) Without(name string) *DataDirBuilder {
	delete(b.files, name)
	return b
}

// Build generates the in-memory filesystem from the accumulated files.
func (b *DataDirBuilder) Build() *filesystem.MemoryFileSystem {
	fsys := filesystem.NewMemoryFileSystem(filepath.Dir(b.dir))
	for name, content := range b.files {
		fsys.AddFile(filepath.Join(b.dir, name), content)
	}
	return fsys
}

// MinimalCatalog returns a small, consistent data set covering every catalog
// table: two languages, one type chart, one generation named in both
// languages and two games, one of them without a platform.
func MinimalCatalog(dir string) *DataDirBuilder {
	return NewDataDirBuilder(dir).
		AddTable("languages", "id,identifier,iso639,is_official",
			"1,ja,ja,True",
			"9,en,,False",
		).
		AddTable("type_charts", "id,identifier",
			"1,gen1",
		).
		AddTable("generations", "id,identifier,is_base_series,release_order,type_chart_id",
			"1,generation-i,True,1,1",
		).
		AddTable("generation_names", "language_id,generation_id,name",
			"1,1,第一世代",
			"9,1,Generation I",
		).
		AddTable("games", "id,identifier,generation_id,platform",
			"1,red-green,1,game-boy",
			"2,stadium,1,",
		)
}

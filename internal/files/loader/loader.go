package loader

import (
	"bytes"
	"context"
	"fmt"

	"github.com/vvka-141/dexdb/internal/codec"
	"github.com/vvka-141/dexdb/internal/files/scanner"
	"github.com/vvka-141/dexdb/internal/schema"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// Loader decodes data files and inserts their rows.
type Loader struct {
	codec codec.Codec
}

// NewLoader creates a loader decoding with c.
func NewLoader(c codec.Codec) *Loader {
	return &Loader{codec: c}
}

// Decode parses file as the CSV source of t.
func (l *Loader) Decode(file scanner.DataFile, t schema.Table) ([]codec.Row, error) {
	return l.codec.ReadTable(bytes.NewReader(file.Content), t)
}

// Insert bulk inserts rows into t and returns the number of rows written.
// An empty slice issues no statement.
func (l *Loader) Insert(ctx context.Context, tx dexdb.Tx, t schema.Table, rows []codec.Row) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	values := make([][]any, len(rows))
	for i, row := range rows {
		values[i] = []any(row)
	}

	n, err := tx.InsertRows(ctx, t.Name, t.ColumnNames(), values)
	if err != nil {
		return n, fmt.Errorf("failed to insert into %s: %w", t.Name, err)
	}
	if n != int64(len(rows)) {
		return n, fmt.Errorf("%w: inserted %d of %d rows into %s", dexdb.ErrStore, n, len(rows), t.Name)
	}
	return n, nil
}

package codec

import (
	"fmt"
	"strconv"

	"github.com/vvka-141/dexdb/internal/schema"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// Normalize converts a value scanned from a store into the codec's value
// domain. Drivers disagree on representations: SQLite has no boolean storage
// class and returns 0/1, and some drivers return text as []byte.
func Normalize(col schema.Column, v any) (Value, error) {
	if b, ok := v.([]byte); ok {
		v = string(b)
	}
	if v == nil {
		return nil, nil
	}

	switch col.Type {
	case schema.Integer:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int32:
			return int64(n), nil
		case int16:
			return int64(n), nil
		case int8:
			return int64(n), nil
		case int:
			return int64(n), nil
		case string:
			parsed, err := strconv.ParseInt(n, 10, 64)
			if err == nil {
				return parsed, nil
			}
		}

	case schema.Boolean:
		switch b := v.(type) {
		case bool:
			return b, nil
		case int64:
			if b == 0 || b == 1 {
				return b == 1, nil
			}
		case string:
			// Passthrough text stored by the lenient decoder.
			return b, nil
		}

	case schema.Text, schema.Unicode, schema.Enum:
		if s, ok := v.(string); ok {
			return s, nil
		}
	}

	return nil, fmt.Errorf("%w: column %q (%s) cannot hold %T value %v",
		dexdb.ErrTypeCoercion, col.Name, col.Type, v, v)
}

// NormalizeRow applies Normalize to every value of a scanned row.
func NormalizeRow(t schema.Table, values []any) (Row, error) {
	if len(values) != len(t.Columns) {
		return nil, fmt.Errorf("%w: %s: got %d values, want %d",
			dexdb.ErrMalformedRow, t.Name, len(values), len(t.Columns))
	}
	row := make(Row, len(values))
	for i, col := range t.Columns {
		v, err := Normalize(col, values[i])
		if err != nil {
			return nil, &dexdb.RowError{Table: t.Name, Column: col.Name, Err: err}
		}
		row[i] = v
	}
	return row, nil
}

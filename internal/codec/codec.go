// Package codec converts between CSV records and typed rows.
//
// Decoding follows the column descriptors of a table:
//   - an empty field is null in a nullable column and an error otherwise
//   - Integer fields are base-10 64-bit integers
//   - Boolean fields map "True" and "False" to bool; any other text is kept
//     as a string unless Codec.StrictBooleans is set
//   - Text, Unicode and Enum fields are kept as strings
//
// Encoding is the exact inverse for every row whose strings are non-empty,
// since an empty field always decodes to null.
package codec

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/vvka-141/dexdb/internal/schema"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// Value is a typed field: nil, int64, string or bool.
type Value = any

// Row holds one Value per column, in declared column order.
type Row []Value

// Codec decodes and encodes rows. The zero value is the lenient codec.
type Codec struct {
	// StrictBooleans rejects boolean fields other than "True" and "False".
	StrictBooleans bool
}

// Decode converts one CSV record using the zero Codec.
func Decode(raw []string, t schema.Table) (Row, error) {
	return Codec{}.Decode(raw, t)
}

// Encode renders rows using the zero Codec.
func Encode(rows []Row, t schema.Table) [][]string {
	return Codec{}.Encode(rows, t)
}

// Decode converts one CSV record into a typed row. Errors are *dexdb.RowError
// values naming the table and the offending column.
func (c Codec) Decode(raw []string, t schema.Table) (Row, error) {
	if len(raw) != len(t.Columns) {
		return nil, &dexdb.RowError{
			Table: t.Name,
			Err:   fmt.Errorf("%w: got %d fields, want %d", dexdb.ErrMalformedRow, len(raw), len(t.Columns)),
		}
	}

	row := make(Row, len(t.Columns))
	for i, col := range t.Columns {
		v, err := c.decodeField(raw[i], col)
		if err != nil {
			return nil, &dexdb.RowError{Table: t.Name, Column: col.Name, Err: err}
		}
		row[i] = v
	}
	return row, nil
}

func (c Codec) decodeField(field string, col schema.Column) (Value, error) {
	if field == "" {
		if col.Nullable {
			return nil, nil
		}
		return nil, dexdb.ErrRequiredFieldMissing
	}

	switch col.Type {
	case schema.Integer:
		n, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not an integer", dexdb.ErrTypeCoercion, field)
		}
		return n, nil

	case schema.Boolean:
		switch field {
		case dexdb.BooleanTrue:
			return true, nil
		case dexdb.BooleanFalse:
			return false, nil
		}
		if c.StrictBooleans {
			return nil, fmt.Errorf("%w: %q is not %s or %s",
				dexdb.ErrTypeCoercion, field, dexdb.BooleanTrue, dexdb.BooleanFalse)
		}
		return field, nil

	case schema.Enum:
		if len(col.Values) > 0 && !slices.Contains(col.Values, field) {
			return nil, fmt.Errorf("%w: %q is not one of %v", dexdb.ErrTypeCoercion, field, col.Values)
		}
		return field, nil

	case schema.Text, schema.Unicode:
		return field, nil
	}

	return nil, fmt.Errorf("%w: column type %s", dexdb.ErrTypeCoercion, col.Type)
}

// Encode renders a header record of the column names followed by one record
// per row.
func (c Codec) Encode(rows []Row, t schema.Table) [][]string {
	out := make([][]string, 0, len(rows)+1)
	out = append(out, t.ColumnNames())
	for _, row := range rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = encodeField(v)
		}
		out = append(out, rec)
	}
	return out
}

func encodeField(v Value) string {
	switch v := v.(type) {
	case nil:
		return ""
	case bool:
		if v {
			return dexdb.BooleanTrue
		}
		return dexdb.BooleanFalse
	case int64:
		return strconv.FormatInt(v, 10)
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

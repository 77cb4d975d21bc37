package codec

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/vvka-141/dexdb/internal/schema"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

const utf8BOM = "\ufeff"

// ReadTable reads a CSV document for t. The header must list the table's
// columns in declared order. Every error carries the 1-based line number of
// the offending record.
func (c Codec) ReadTable(r io.Reader, t schema.Table) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &dexdb.RowError{Table: t.Name, Line: 1, Err: fmt.Errorf("%w: empty file", dexdb.ErrHeaderMismatch)}
	}
	if err != nil {
		return nil, parseError(t.Name, err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	if want := t.ColumnNames(); !slices.Equal(header, want) {
		return nil, &dexdb.RowError{
			Table: t.Name,
			Line:  1,
			Err:   fmt.Errorf("%w: got %v, want %v", dexdb.ErrHeaderMismatch, header, want),
		}
	}

	var rows []Row
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, parseError(t.Name, err)
		}
		line, _ := reader.FieldPos(0)

		row, err := c.Decode(rec, t)
		if err != nil {
			var rowErr *dexdb.RowError
			if errors.As(err, &rowErr) {
				rowErr.Line = line
				return nil, rowErr
			}
			return nil, &dexdb.RowError{Table: t.Name, Line: line, Err: err}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func parseError(table string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &dexdb.RowError{Table: table, Line: pe.Line, Err: fmt.Errorf("%w: %v", dexdb.ErrMalformedRow, pe.Err)}
	}
	return fmt.Errorf("read %s: %w: %v", table, dexdb.ErrIO, err)
}

// WriteTable writes rows for t as CSV with "\n" line endings.
func (c Codec) WriteTable(w io.Writer, t schema.Table, rows []Row) error {
	writer := csv.NewWriter(w)
	if err := writer.WriteAll(c.Encode(rows, t)); err != nil {
		return fmt.Errorf("write %s: %w: %v", t.Name, dexdb.ErrWriteFailed, err)
	}
	return nil
}

package loader

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/dexdb/internal/codec"
	"github.com/vvka-141/dexdb/internal/files/scanner"
	"github.com/vvka-141/dexdb/internal/schema"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

var languages = schema.Table{
	Name: "languages",
	Columns: []schema.Column{
		{Name: "id", Type: schema.Integer},
		{Name: "identifier", Type: schema.Unicode},
		{Name: "is_official", Type: schema.Boolean},
	},
	PrimaryKey: []string{"id"},
}

type insertCall struct {
	table   string
	columns []string
	rows    [][]any
}

type fakeTx struct {
	dexdb.Tx
	calls []insertCall
	short int64
	err   error
}

func (f *fakeTx) InsertRows(_ context.Context, table string, columns []string, rows [][]any) (int64, error) {
	f.calls = append(f.calls, insertCall{table, columns, rows})
	if f.err != nil {
		return 0, f.err
	}
	return int64(len(rows)) - f.short, nil
}

func TestLoader_DecodeThenInsert(t *testing.T) {
	tx := &fakeTx{}
	file := scanner.DataFile{Table: "languages", Content: []byte("id,identifier,is_official\n1,ja,True\n2,roomaji,False\n")}
	l := NewLoader(codec.Codec{})

	rows, err := l.Decode(file, languages)
	require.NoError(t, err)

	n, err := l.Insert(context.Background(), tx, languages, rows)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.Len(t, tx.calls, 1)
	assert.Equal(t, "languages", tx.calls[0].table)
	assert.Equal(t, []string{"id", "identifier", "is_official"}, tx.calls[0].columns)
	assert.Equal(t, [][]any{{int64(1), "ja", true}, {int64(2), "roomaji", false}}, tx.calls[0].rows)
}

func TestLoader_HeaderOnlyIssuesNoStatement(t *testing.T) {
	tx := &fakeTx{}
	file := scanner.DataFile{Content: []byte("id,identifier,is_official\n")}
	l := NewLoader(codec.Codec{})

	rows, err := l.Decode(file, languages)
	require.NoError(t, err)
	assert.Empty(t, rows)

	n, err := l.Insert(context.Background(), tx, languages, rows)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, tx.calls)
}

func TestLoader_Decode_ReportsLine(t *testing.T) {
	file := scanner.DataFile{Content: []byte("id,identifier,is_official\n1,ja,True\nx,en,True\n")}

	_, err := NewLoader(codec.Codec{}).Decode(file, languages)
	require.Error(t, err)
	assert.True(t, errors.Is(err, dexdb.ErrTypeCoercion))

	var rowErr *dexdb.RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 3, rowErr.Line)
}

func TestLoader_Decode_StrictBooleans(t *testing.T) {
	file := scanner.DataFile{Content: []byte("id,identifier,is_official\n1,ja,yes\n")}

	rows, err := NewLoader(codec.Codec{}).Decode(file, languages)
	require.NoError(t, err)
	assert.Equal(t, "yes", rows[0][2])

	_, err = NewLoader(codec.Codec{StrictBooleans: true}).Decode(file, languages)
	assert.True(t, errors.Is(err, dexdb.ErrTypeCoercion))
}

func TestLoader_Insert_StoreError(t *testing.T) {
	tx := &fakeTx{err: dexdb.ErrConstraintViolation}

	_, err := NewLoader(codec.Codec{}).Insert(context.Background(), tx, languages, []codec.Row{{int64(1), "ja", true}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dexdb.ErrConstraintViolation))
	assert.Contains(t, err.Error(), "languages")
}

func TestLoader_Insert_ShortCount(t *testing.T) {
	tx := &fakeTx{short: 1}

	_, err := NewLoader(codec.Codec{}).Insert(context.Background(), tx, languages, []codec.Row{{int64(1), "ja", true}, {int64(2), "en", true}})
	assert.True(t, errors.Is(err, dexdb.ErrStore))
}

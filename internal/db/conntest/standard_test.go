//go:build conntest

package conntest

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/dexdb/internal/db"
	"github.com/vvka-141/dexdb/pkg/dexdb"
)

func withURL(t *testing.T, edit func(u *url.URL)) string {
	t.Helper()
	u, err := url.Parse(stdContainer.ConnString)
	require.NoError(t, err)
	edit(u)
	return u.String()
}

func TestStandardConnection_UserPassword(t *testing.T) {
	store, err := connectTarget(t, stdContainer.ConnString, nil)
	require.NoError(t, err)

	assert.Equal(t, db.DialectPostgres, store.Dialect())
	assert.NotContains(t, store.Target(), "postgres:postgres@", "password must be redacted")
	assert.Contains(t, queryVersion(t, store), "PostgreSQL")
}

func TestStandardConnection_WrongPassword(t *testing.T) {
	raw := withURL(t, func(u *url.URL) {
		u.User = url.UserPassword(u.User.Username(), "definitely-wrong-password")
	})

	_, err := connectTarget(t, raw, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, dexdb.ErrConnectionFailed)
	assert.Contains(t, err.Error(), "password authentication failed")
	assert.Equal(t, dexdb.ExitConnectionError, dexdb.ExitCodeForError(err))
}

func TestStandardConnection_MissingDatabase(t *testing.T) {
	raw := withURL(t, func(u *url.URL) { u.Path = "/no_such_pokedex" })

	_, err := connectTarget(t, raw, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, dexdb.ErrConnectionFailed)
	assert.Contains(t, err.Error(), "createdb no_such_pokedex")
}

func TestStandardConnection_Refused(t *testing.T) {
	raw := withURL(t, func(u *url.URL) { u.Host = "127.0.0.1:1" })

	_, err := connectTarget(t, raw, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, dexdb.ErrConnectionFailed)
	assert.Equal(t, dexdb.ExitConnectionError, dexdb.ExitCodeForError(err))
}

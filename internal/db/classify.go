package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// pgIntegrityViolationClass is the SQLSTATE class for integrity constraint
// violations (unique, foreign key, not null, check).
const pgIntegrityViolationClass = "23"

// classifyError tags a driver error with the matching store sentinel. Errors
// that already carry a dexdb sentinel, and context errors, pass through.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, dexdb.ErrStore) || errors.Is(err, dexdb.ErrData) {
		return err
	}
	if isConstraintViolation(err) {
		return fmt.Errorf("%w: %w", dexdb.ErrConstraintViolation, err)
	}
	return fmt.Errorf("%w: %w", dexdb.ErrStore, err)
}

func isConstraintViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return len(pgErr.Code) == 5 && pgErr.Code[:2] == pgIntegrityViolationClass
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}

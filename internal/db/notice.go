package db

import (
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vvka-141/dexdb/pkg/dexdb"
)

// noticeHandler returns a pgx OnNotice callback that forwards server notices
// (for example "relation already exists, skipping") to the verbose log.
func noticeHandler(logger dexdb.Logger) func(*pgconn.PgConn, *pgconn.Notice) {
	return func(_ *pgconn.PgConn, n *pgconn.Notice) {
		if n == nil {
			return
		}
		logger.Verbose("%s: %s", n.Severity, n.Message)
	}
}

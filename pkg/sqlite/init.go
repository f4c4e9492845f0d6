// Package sqlite registers the application's SQLite driver under a
// dedicated name with a connect hook, so every pooled connection
// carries the same pragmas.
//
// The FTS5 extension must be compiled into the bundled SQLite: build
// with `-tags sqlite_fts5`.
package sqlite

import (
	"database/sql"

	"github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver name to open with.
const DriverName = "sqlite3_fts"

func init() {
	sql.Register(DriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			// foreign_keys is per-connection in SQLite; without the
			// hook, pooled connections would silently skip cascades.
			_, err := conn.Exec(`
				PRAGMA foreign_keys = ON;
				PRAGMA journal_mode = WAL;
				PRAGMA busy_timeout = 5000;
				PRAGMA synchronous = NORMAL;
			`, nil)
			return err
		},
	})
}

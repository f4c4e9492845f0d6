package sqlite

import (
	"database/sql"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open(DriverName, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Ping(); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}
	return db
}

func TestConnectHookPragmas(t *testing.T) {
	db := openTestDB(t)

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("failed to query foreign_keys pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}

	var mode string
	if err := db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("failed to query journal_mode pragma: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want \"wal\"", mode)
	}
}

// Verifies the bundled SQLite actually carries FTS5 and that the
// external-content pattern (index rows joined back over rowid) works.
// A failure here means the binary was built without -tags sqlite_fts5.
func TestFTS5Available(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`CREATE TABLE notes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		content TEXT
	)`)
	if err != nil {
		t.Fatal(err)
	}

	_, err = db.Exec(`CREATE VIRTUAL TABLE notes_fts USING fts5(content, content='notes', content_rowid='id')`)
	if err != nil {
		t.Fatalf("failed to create FTS5 table (missing sqlite_fts5 build tag?): %v", err)
	}

	content := "the quick brown fox"
	res, err := db.Exec(`INSERT INTO notes (content) VALUES (?)`, content)
	if err != nil {
		t.Fatal(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec(`INSERT INTO notes_fts(rowid, content) VALUES (?, ?)`, id, content); err != nil {
		t.Fatal(err)
	}

	var got string
	err = db.QueryRow(`
		SELECT n.content
		FROM notes_fts f
		JOIN notes n ON n.id = f.rowid
		WHERE notes_fts MATCH 'quick'`).Scan(&got)
	if err != nil {
		t.Fatalf("FTS5 match query failed: %v", err)
	}
	if got != content {
		t.Errorf("expected content %q, got %q", content, got)
	}
}

// ABOUTME: Opens the SQLite file that holds callbook's kv table
// ABOUTME: Creates the data directory, enables WAL and applies the schema
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// dsnOptions turn on write-ahead logging and wait on a busy writer instead of
// failing straight away.
const dsnOptions = "?_journal_mode=WAL&_busy_timeout=5000"

// OpenDatabase opens the database at path, creating its directory with
// owner-only permissions, and makes sure the kv table exists.
func OpenDatabase(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	database, err := sql.Open("sqlite3", path+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// Every write goes through one connection; SQLite has a single writer.
	database.SetMaxOpenConns(1)

	if err := InitSchema(database); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return database, nil
}

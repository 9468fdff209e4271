// ABOUTME: Database schema definitions
// ABOUTME: One key-value table holding each serialized collection blob
package db

import (
	"database/sql"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at DATETIME NOT NULL
);
`

func InitSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

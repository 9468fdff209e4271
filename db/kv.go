// ABOUTME: SQLite implementation of the key-value backing store
// ABOUTME: Upserts whole collection blobs into the kv table
package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/harperreed/callbook/backing"
)

// KV stores values in the kv table of a SQLite database.
type KV struct {
	db *sql.DB
}

// OpenKV opens (or creates) the database at path and returns a KV on it.
func OpenKV(path string) (*KV, error) {
	database, err := OpenDatabase(path)
	if err != nil {
		return nil, err
	}
	return NewKV(database), nil
}

func NewKV(database *sql.DB) *KV {
	return &KV{db: database}
}

func (k *KV) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := k.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", backing.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (k *KV) Set(ctx context.Context, key, value string) error {
	_, err := k.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	return err
}

func (k *KV) Remove(ctx context.Context, key string) error {
	_, err := k.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Keys lists every stored key in sorted order.
func (k *KV) Keys(ctx context.Context) ([]string, error) {
	rows, err := k.db.QueryContext(ctx, `SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var keys []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	return keys, rows.Err()
}

func (k *KV) Close() error {
	return k.db.Close()
}

// ABOUTME: Tests for the SQLite database and kv backing store
// ABOUTME: Covers directory creation, WAL mode, upserts and persistence across reopen
package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/callbook/backing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDatabase(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	db, err := OpenDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='kv'").Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestOpenDatabaseUsesWAL(t *testing.T) {
	db, err := OpenDatabase(filepath.Join(t.TempDir(), "wal.db"))
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestOpenDatabaseReportsDataDirFailure(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := OpenDatabase(filepath.Join(blocker, "sub", "callbook.db"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create data dir")
}

func TestKVRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv, err := OpenKV(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	defer kv.Close()

	_, err = kv.Get(ctx, "notes")
	assert.ErrorIs(t, err, backing.ErrNotFound)

	require.NoError(t, kv.Set(ctx, "notes", `[{"id":"a"}]`))
	require.NoError(t, kv.Set(ctx, "notes", `[{"id":"b"}]`))
	require.NoError(t, kv.Set(ctx, "contacts", `[]`))

	v, err := kv.Get(ctx, "notes")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"b"}]`, v)

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"contacts", "notes"}, keys)

	require.NoError(t, kv.Remove(ctx, "notes"))
	_, err = kv.Get(ctx, "notes")
	assert.ErrorIs(t, err, backing.ErrNotFound)
}

func TestKVPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "kv.db")

	kv, err := OpenKV(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, "preset-tags", `["vip"]`))
	require.NoError(t, kv.Close())

	kv, err = OpenKV(path)
	require.NoError(t, err)
	defer kv.Close()

	v, err := kv.Get(ctx, "preset-tags")
	require.NoError(t, err)
	assert.Equal(t, `["vip"]`, v)
}

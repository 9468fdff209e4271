// ABOUTME: Local BadgerDB key-value store with the same surface as charm/kv
// ABOUTME: Backs the badger backend and isolated test clients without a charm server
package charm

import (
	"fmt"
	"os"
	"testing"

	"github.com/dgraph-io/badger/v3"
)

// localKV wraps BadgerDB to provide the same interface as charm/kv.KV.
type localKV struct {
	db *badger.DB
}

func (t *localKV) Get(key []byte) ([]byte, error) {
	var result []byte
	err := t.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		result, err = item.ValueCopy(nil)
		return err
	})
	return result, err
}

func (t *localKV) Set(key, value []byte) error {
	return t.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (t *localKV) Delete(key []byte) error {
	return t.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

func (t *localKV) Keys() ([][]byte, error) {
	var keys [][]byte
	err := t.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	return keys, err
}

// Sync is a no-op; a local store has no server.
func (t *localKV) Sync() error {
	return nil
}

func (t *localKV) Reset() error {
	return t.db.DropAll()
}

func (t *localKV) Close() error {
	return t.db.Close()
}

// OpenLocal opens a badger database in dir and returns a Client on it.
// Auto-sync is always off.
func OpenLocal(dir string) (*Client, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	opts := badger.DefaultOptions(dir).
		WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}

	local := &localKV{db: db}
	return &Client{
		kv:     local,
		local:  local,
		config: &Config{Host: "localhost", AutoSync: false},
	}, nil
}

// NewTestClient creates a local client in a temporary directory that is
// removed when the test finishes.
func NewTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := OpenLocal(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open local store: %v", err)
	}

	t.Cleanup(func() {
		if err := c.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	return c
}

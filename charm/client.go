// ABOUTME: Charm KV client wrapper implementing the key-value backing store
// ABOUTME: Syncs to the charm server after writes when auto-sync is enabled
package charm

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/callbook/backing"
)

// kvStore is the subset of charm/kv.KV the client needs. The local badger
// store satisfies it too.
type kvStore interface {
	Get(key []byte) ([]byte, error)
	Set(key, value []byte) error
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
}

// Client wraps a charm KV (or a local badger KV) with config and sync helpers.
type Client struct {
	kv     kvStore
	config *Config
	local  *localKV
	mu     sync.RWMutex
}

// NewClient opens the charm KV for AppName against cfg.Host.
func NewClient(cfg *Config) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// charm reads the server from the environment
	_ = os.Setenv("CHARM_HOST", cfg.Host)

	db, err := kv.OpenWithDefaults(AppName)
	if err != nil {
		return nil, fmt.Errorf("failed to open charm kv: %w", err)
	}

	c := &Client{
		kv:     db,
		config: cfg,
	}

	// Sync on startup to pull remote changes
	if cfg.AutoSync {
		_ = db.Sync()
	}

	return c, nil
}

// Close releases the local badger database when there is one.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.local != nil {
		return c.local.Close()
	}
	// charm/kv doesn't expose Close(); badger is cleaned up on process exit
	return nil
}

// Config returns the client's config.
func (c *Client) Config() *Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

// ID returns the charm user ID for this device.
func (c *Client) ID() (string, error) {
	if c.local != nil {
		return "", fmt.Errorf("local store has no charm account")
	}
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("failed to create charm client: %w", err)
	}
	return cc.ID()
}

// IsConnected checks if the client can reach charm cloud.
func (c *Client) IsConnected() bool {
	_, err := c.ID()
	return err == nil
}

// Sync performs a manual sync with the charm server.
func (c *Client) Sync() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Sync()
}

// Get retrieves a value by key.
func (c *Client) Get(_ context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, err := c.kv.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", backing.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return string(v), nil
}

// Set stores a value and syncs if enabled.
func (c *Client) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.kv.Set([]byte(key), []byte(value)); err != nil {
		return err
	}

	// Sync while still holding lock to avoid race condition
	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
	return nil
}

// Remove deletes a key and syncs if enabled.
func (c *Client) Remove(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	err := c.kv.Delete([]byte(key))
	if err != nil && !errors.Is(err, badger.ErrKeyNotFound) {
		return err
	}

	if c.config.AutoSync {
		_ = c.kv.Sync()
	}
	return nil
}

// Keys returns all keys (for debugging/admin).
func (c *Client) Keys() ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	raw, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}
	keys := make([]string, len(raw))
	for i, k := range raw {
		keys[i] = string(k)
	}
	return keys, nil
}

// Reset wipes all data from the KV store (use with caution!)
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

// ABOUTME: Opens the configured backing store and logger
// ABOUTME: Returned closers release database handles and connections
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/harperreed/callbook/backing"
	"github.com/harperreed/callbook/charm"
	"github.com/harperreed/callbook/db"
)

// Backend is a backing store together with whatever releases it.
type Backend struct {
	backing.Store
	io.Closer
	Name string
	// Charm is set for the charm and badger backends so sync commands can reach it.
	Charm *charm.Client
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open connects to the configured backend.
func (c *Config) Open() (*Backend, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	switch c.Backend {
	case BackendSQLite:
		kv, err := db.OpenKV(c.SQLitePath())
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite at %s: %w", c.SQLitePath(), err)
		}
		return &Backend{Store: kv, Closer: kv, Name: c.Backend}, nil

	case BackendCharm:
		charmCfg, err := charm.LoadConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load charm config: %w", err)
		}
		client, err := charm.NewClient(charmCfg)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: client, Closer: client, Name: c.Backend, Charm: client}, nil

	case BackendBadger:
		client, err := charm.OpenLocal(c.BadgerDir())
		if err != nil {
			return nil, err
		}
		return &Backend{Store: client, Closer: client, Name: c.Backend, Charm: client}, nil

	case BackendRedis:
		r, err := backing.NewRedis(c.RedisURL)
		if err != nil {
			return nil, err
		}
		return &Backend{Store: r, Closer: r, Name: c.Backend}, nil

	default:
		return &Backend{Store: backing.NewMemory(), Closer: nopCloser{}, Name: c.Backend}, nil
	}
}

// Logger builds the application logger at the configured level.
func (c *Config) Logger(prefix string) *log.Logger {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.WarnLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		Prefix: prefix,
		Level:  level,
	})
}

// ABOUTME: Configuration for Charm KV backend connection
// ABOUTME: Handles server settings, auto-sync preferences and the local config file

package charm

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/charm/kv"
)

const (
	// DefaultCharmHost is the self-hosted 2389 research server.
	DefaultCharmHost = "charm.2389.dev"

	// AppName is the application name for the Charm KV database.
	AppName = "callbook"

	// ConfigFileName is where we store local config.
	ConfigFileName = "charm-config.json"
)

// Config holds charm connection settings.
type Config struct {
	// Host is the charm server hostname (default: charm.2389.dev)
	Host string `json:"host,omitempty"`

	// AutoSync enables automatic sync after every write operation
	AutoSync bool `json:"auto_sync"`

	// StaleThreshold is the duration before data is considered stale and needs a sync
	StaleThreshold time.Duration `json:"stale_threshold,omitempty"`
}

// DefaultConfig returns a new config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:           DefaultCharmHost,
		AutoSync:       true,
		StaleThreshold: kv.DefaultStaleThreshold,
	}
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(xdg.DataHome, AppName, ConfigFileName)
}

// LoadConfig loads config from disk, or returns defaults if not found.
// CALLBOOK_CHARM_HOST and CALLBOOK_CHARM_AUTO_SYNC override file values.
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	switch {
	case err == nil:
		var fileCfg Config
		if jsonErr := json.Unmarshal(data, &fileCfg); jsonErr == nil {
			cfg = &fileCfg
		}
	case !os.IsNotExist(err):
		return nil, err
	}

	// Apply defaults for missing fields
	if cfg.Host == "" {
		cfg.Host = DefaultCharmHost
	}
	if cfg.StaleThreshold == 0 {
		cfg.StaleThreshold = kv.DefaultStaleThreshold
	}

	if host := os.Getenv("CALLBOOK_CHARM_HOST"); host != "" {
		cfg.Host = host
	}
	if v := os.Getenv("CALLBOOK_CHARM_AUTO_SYNC"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.AutoSync = enabled
		}
	}

	return cfg, nil
}

// Save persists the config to disk.
func (c *Config) Save() error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0600)
}

// SetAutoSync enables or disables auto-sync and saves.
func (c *Config) SetAutoSync(enabled bool) error {
	c.AutoSync = enabled
	return c.Save()
}

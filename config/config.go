// ABOUTME: Application configuration: storage backend, data paths and log level
// ABOUTME: Defaults, then the XDG config file, then .env, then CALLBOOK_* environment variables
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	AppName        = "callbook"
	ConfigFileName = "config.json"
)

// Backend names.
const (
	BackendSQLite = "sqlite"
	BackendCharm  = "charm"
	BackendBadger = "badger"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

var backends = []string{BackendSQLite, BackendCharm, BackendBadger, BackendRedis, BackendMemory}

type Config struct {
	Backend  string `json:"backend"`
	DataDir  string `json:"data_dir"`
	RedisURL string `json:"redis_url,omitempty"`
	LogLevel string `json:"log_level"`
}

func Default() *Config {
	return &Config{
		Backend:  BackendSQLite,
		DataDir:  filepath.Join(xdg.DataHome, AppName),
		RedisURL: "redis://localhost:6379/0",
		LogLevel: "warn",
	}
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(xdg.DataHome, AppName, ConfigFileName)
}

// Load reads configuration from the default locations.
func Load() (*Config, error) {
	return LoadFrom(Path(), ".env")
}

// LoadFrom reads configuration from an explicit config file and dotenv file.
// Either may be missing. A config file that does not parse is ignored.
func LoadFrom(path, envFile string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg Config
		if jsonErr := json.Unmarshal(data, &fileCfg); jsonErr == nil {
			cfg.merge(&fileCfg)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if envFile != "" {
		// godotenv never overrides variables already set in the environment
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if v := os.Getenv("CALLBOOK_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("CALLBOOK_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("CALLBOOK_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("CALLBOOK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	return cfg, nil
}

func (c *Config) merge(other *Config) {
	if other.Backend != "" {
		c.Backend = other.Backend
	}
	if other.DataDir != "" {
		c.DataDir = other.DataDir
	}
	if other.RedisURL != "" {
		c.RedisURL = other.RedisURL
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

// Validate checks the backend name and log level.
func (c *Config) Validate() error {
	known := false
	for _, b := range backends {
		if c.Backend == b {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown backend %q (want one of %s)", c.Backend, strings.Join(backends, ", "))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.Backend != BackendMemory && c.Backend != BackendRedis && c.DataDir == "" {
		return fmt.Errorf("%s backend needs a data directory", c.Backend)
	}
	return nil
}

// Save writes the config file with owner-only permissions.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// SQLitePath is the database file used by the sqlite backend.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, AppName+".db")
}

// BadgerDir is the directory used by the badger backend.
func (c *Config) BadgerDir() string {
	return filepath.Join(c.DataDir, "badger")
}

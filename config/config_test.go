// ABOUTME: Tests for configuration loading and backend opening
// ABOUTME: Layering of file, dotenv and environment plus each local backend
package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{"CALLBOOK_BACKEND", "CALLBOOK_DATA_DIR", "CALLBOOK_REDIS_URL", "CALLBOOK_LOG_LEVEL"}

// clearEnv unsets every CALLBOOK_* variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "missing.json"), "")
	require.NoError(t, err)
	assert.Equal(t, BackendSQLite, cfg.Backend)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.NoError(t, cfg.Validate())
}

func TestLoadLayering(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, (&Config{Backend: "badger", DataDir: dir, LogLevel: "info"}).Save(path))

	cfg, err := LoadFrom(path, "")
	require.NoError(t, err)
	assert.Equal(t, BackendBadger, cfg.Backend)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.NotEmpty(t, cfg.RedisURL, "unset file fields keep defaults")

	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("CALLBOOK_LOG_LEVEL=debug\n"), 0600))
	t.Setenv("CALLBOOK_BACKEND", "Memory")

	cfg, err = LoadFrom(path, envFile)
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadIgnoresCorruptFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0600))

	cfg, err := LoadFrom(path, "")
	require.NoError(t, err)
	assert.Equal(t, Default().Backend, cfg.Backend)
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Config{Backend: "floppy", LogLevel: "info", DataDir: "x"}).Validate())
	assert.Error(t, (&Config{Backend: BackendSQLite, LogLevel: "loud", DataDir: "x"}).Validate())
	assert.Error(t, (&Config{Backend: BackendSQLite, LogLevel: "info"}).Validate())
	assert.NoError(t, (&Config{Backend: BackendMemory, LogLevel: "info"}).Validate())
}

func TestOpenLocalBackends(t *testing.T) {
	for _, name := range []string{BackendSQLite, BackendBadger, BackendMemory} {
		t.Run(name, func(t *testing.T) {
			cfg := &Config{Backend: name, DataDir: t.TempDir(), LogLevel: "error"}
			b, err := cfg.Open()
			require.NoError(t, err)
			defer func() { _ = b.Close() }()

			ctx := context.Background()
			require.NoError(t, b.Set(ctx, "k", "v"))
			got, err := b.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, "v", got)
			assert.Equal(t, name, b.Name)
		})
	}
}

func TestOpenRedisUnreachable(t *testing.T) {
	cfg := &Config{Backend: BackendRedis, RedisURL: "redis://127.0.0.1:1/0", LogLevel: "error"}
	_, err := cfg.Open()
	assert.Error(t, err)
}

func TestLoggerLevel(t *testing.T) {
	assert.Equal(t, log.DebugLevel, (&Config{LogLevel: "debug"}).Logger("x").GetLevel())
	assert.Equal(t, log.WarnLevel, (&Config{LogLevel: "bogus"}).Logger("x").GetLevel())
}

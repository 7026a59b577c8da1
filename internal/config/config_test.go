package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "gemini-2.5-flash", cfg.Provider.Model)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, 0, cfg.Cache.MaxEntries)
	require.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	t.Setenv("WORTSCHATZ_TEST_KEY", "secret")
	require.NoError(t, os.WriteFile(path, []byte(`
data_dir: `+dir+`
storage:
  backend: sqlite
provider:
  api_key: $WORTSCHATZ_TEST_KEY
  timeout: 30s
cache:
  max_entries: 500
log:
  level: debug
`), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "secret", cfg.Provider.APIKey)
	assert.Equal(t, 30*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, 500, cfg.Cache.MaxEntries)
	assert.Equal(t, "gemini-2.5-flash", cfg.Provider.Model, "unset keys keep defaults")
	assert.Equal(t, filepath.Join(dir, "wortschatz.log"), cfg.LogFile())
}

func TestLoadFile_UnsetKeyVariable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider:\n  api_key: $WORTSCHATZ_SURELY_UNSET\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.Provider.APIKey)
}

func TestEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: blue\n"), 0o600))
	t.Setenv("WORTSCHATZ_PROVIDER_MODEL", "gemini-2.5-pro")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", cfg.Provider.Model)
	assert.Equal(t, "blue", cfg.Theme)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"backend", func(c *Config) { c.Storage.Backend = "redis" }},
		{"model", func(c *Config) { c.Provider.Model = "" }},
		{"retries", func(c *Config) { c.Provider.MaxRetries = -1 }},
		{"max entries", func(c *Config) { c.Cache.MaxEntries = -5 }},
		{"log level", func(c *Config) { c.Log.Level = "loud" }},
		{"data dir", func(c *Config) { c.DataDir = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

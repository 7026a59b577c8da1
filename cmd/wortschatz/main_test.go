package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/wortschatz/internal/app"
	"github.com/jeanpaul/wortschatz/internal/provider"
	"github.com/jeanpaul/wortschatz/internal/storage"
)

func writeConfig(t *testing.T) (path, dataDir string) {
	t.Helper()
	dir := t.TempDir()
	dataDir = filepath.Join(dir, "data")
	path = filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: "+dataDir+"\nprovider:\n  api_key: \"\"\n"), 0o600))
	return path, dataDir
}

func run(t *testing.T, cfg string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(&out,
		app.WithGenerator(&provider.Fake{}),
		app.WithGetenv(func(string) string { return "" }))
	root.SetArgs(append([]string{"--config", cfg}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestSettingsSetAndGet(t *testing.T) {
	cfg, _ := writeConfig(t)

	_, err := run(t, cfg, "settings", "set", "smart_storage", "true")
	require.NoError(t, err)
	_, err = run(t, cfg, "settings", "set", "locale", "de")
	require.NoError(t, err)
	_, err = run(t, cfg, "settings", "set", "api_key", "abcdef123456")
	require.NoError(t, err)

	out, err := run(t, cfg, "settings", "get", "smart_storage")
	require.NoError(t, err)
	assert.Equal(t, "true\n", out)

	out, err = run(t, cfg, "settings", "get")
	require.NoError(t, err)
	assert.Contains(t, out, "locale=de\n")
	assert.Contains(t, out, "api_key=****3456\n")
}

func TestSettingsSetRejectsBadValues(t *testing.T) {
	cfg, _ := writeConfig(t)
	_, err := run(t, cfg, "settings", "set", "audio", "loud")
	assert.Error(t, err)
	_, err = run(t, cfg, "settings", "set", "locale", "xx")
	assert.Error(t, err)
}

func TestHistory(t *testing.T) {
	cfg, dataDir := writeConfig(t)
	kv, err := storage.NewFileKV(dataDir)
	require.NoError(t, err)
	require.NoError(t, kv.Write(storage.KeyHistory, `[
		{"id":"conv_A1_Essen_short_en_true","topic":"Essen","level":"A1","length":"short","timestamp":100,"isAustrian":true},
		{"id":"conv_B1_Reisen_long_en_false","topic":"Reisen","level":"B1","length":"long","timestamp":200}]`))

	out, err := run(t, cfg, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Reisen")
	assert.NotContains(t, out, "Essen")

	out, err = run(t, cfg, "history", "--austrian")
	require.NoError(t, err)
	assert.Contains(t, out, "Essen")
	assert.NotContains(t, out, "Reisen")

	out, err = run(t, cfg, "history", "--all")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Reisen", "newest first")
}

func TestCacheStats(t *testing.T) {
	cfg, _ := writeConfig(t)
	out, err := run(t, cfg, "cache", "stats")
	require.NoError(t, err)
	assert.Equal(t, "entries: 0 (limit: unbounded)\n", out)
}

func TestVersion(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "wortschatz dev (none)\n", out.String())
}

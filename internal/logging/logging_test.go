package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "wortschatz.log")
	log, err := New(path, "info")
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("cache loaded", zap.Int("entries", 3))
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "cache loaded", entry["msg"])
	assert.Equal(t, "wortschatz", entry["logger"])
	assert.EqualValues(t, 3, entry["entries"])
}

func TestLevelIsAdjustable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wortschatz.log")
	log, err := New(path, "warn")
	require.NoError(t, err)

	log.Info("dropped")
	log.Level.SetLevel(zapcore.DebugLevel)
	log.Debug("kept")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "x.log"), "chatty")
	assert.Error(t, err)
}

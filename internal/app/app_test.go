package app

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/wortschatz/internal/config"
	"github.com/jeanpaul/wortschatz/internal/provider"
	"github.com/jeanpaul/wortschatz/internal/settings"
	"github.com/jeanpaul/wortschatz/internal/storage"
)

type spoken struct {
	mu    sync.Mutex
	texts []string
}

func (s *spoken) Speak(text string, _, _ float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts = append(s.texts, text)
}

func noEnv(string) string { return "" }

func TestNew_WiresPersistentState(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()
	cfg.Provider.APIKey = "from-config"

	gen := &provider.Fake{GenerateFunc: func(context.Context, provider.Request) (json.RawMessage, error) {
		return json.RawMessage(`{"topics":[{"id":"artikel","titleTr":"Articles","titleDe":"Artikel","description":"d"}]}`), nil
	}}
	c, err := New(cfg, nil, WithGenerator(gen), WithSpeaker(&spoken{}), WithGetenv(noEnv))
	require.NoError(t, err)

	assert.Equal(t, "from-config", c.Settings.APIKey())
	assert.Equal(t, "en", c.Settings.Locale())

	_, err = c.Lessons.GrammarTopics(context.Background(), "A1")
	require.NoError(t, err)
	require.NoError(t, c.Close())

	// A second start on the same data dir sees the cached topics.
	again, err := New(cfg, nil, WithGenerator(&provider.Fake{}), WithSpeaker(&spoken{}), WithGetenv(noEnv))
	require.NoError(t, err)
	defer again.Close()
	_, ok := again.Cache.Get("topics_A1_en")
	assert.True(t, ok)
}

func TestNew_StoredKeyWinsOverConfig(t *testing.T) {
	kv := storage.NewMemory(0)
	require.NoError(t, kv.Write(storage.KeyAPIKey, "stored"))
	cfg := config.DefaultConfig()
	cfg.Provider.APIKey = "from-config"

	c, err := New(cfg, nil, WithKV(kv), WithGenerator(&provider.Fake{}), WithSpeaker(&spoken{}), WithGetenv(noEnv))
	require.NoError(t, err)
	assert.Equal(t, "stored", c.Settings.APIKey())
}

func TestSpeak_RespectsAudioPolicy(t *testing.T) {
	sp := &spoken{}
	c, err := New(config.DefaultConfig(), nil,
		WithKV(storage.NewMemory(0)), WithGenerator(&provider.Fake{}), WithSpeaker(sp), WithGetenv(noEnv))
	require.NoError(t, err)

	c.Speak("Hallo", 1, 1)
	c.Settings.SetAudio(settings.AudioDisabled)
	c.Speak("Tschüss", 1, 1)

	assert.Equal(t, []string{"Hallo"}, sp.texts)
}

func TestStrings_FollowLocale(t *testing.T) {
	c, err := New(config.DefaultConfig(), nil,
		WithKV(storage.NewMemory(0)), WithGenerator(&provider.Fake{}), WithSpeaker(&spoken{}), WithGetenv(noEnv))
	require.NoError(t, err)

	require.NoError(t, c.Settings.SetLocale("de"))
	assert.Equal(t, "KI-Tutor", c.Strings().ChatTitle)
}

package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/wortschatz/internal/i18n"
	"github.com/jeanpaul/wortschatz/internal/storage"
)

func noEnv(string) string { return "" }

func TestLoad_Defaults(t *testing.T) {
	kv := storage.NewMemory(0)
	s := Load(kv, nil, Defaults{Getenv: noEnv})

	assert.Equal(t, AudioOnDemand, s.Audio())
	assert.False(t, s.SmartStorage())
	assert.False(t, s.SRS())
	assert.Equal(t, "", s.APIKey())
	assert.Equal(t, "en", s.Locale())

	// The detected locale is persisted on first run.
	v, ok, err := kv.Read(storage.KeyLocale)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "en", v)
}

func TestLoad_DetectsLocaleFromEnvironment(t *testing.T) {
	s := Load(storage.NewMemory(0), nil, Defaults{Getenv: func(k string) string {
		if k == "LANG" {
			return "fa_IR.UTF-8"
		}
		return ""
	}})
	assert.Equal(t, "fa", s.Locale())
	assert.Equal(t, i18n.RTL, s.Direction())
}

func TestLoad_CoercesStoredValues(t *testing.T) {
	kv := storage.NewMemoryFrom(map[string]string{
		storage.KeyAudio:        "loud",
		storage.KeySmartStorage: "true",
		storage.KeySRS:          "yes",
		storage.KeyLocale:       "de",
		storage.KeyAPIKey:       "stored-key",
	})
	s := Load(kv, nil, Defaults{APIKey: "env-key", Getenv: noEnv})

	assert.Equal(t, AudioOnDemand, s.Audio(), "unknown audio value falls back to the default")
	assert.True(t, s.SmartStorage())
	assert.False(t, s.SRS(), "only the literal true enables a toggle")
	assert.Equal(t, "de", s.Locale())
	assert.Equal(t, "stored-key", s.APIKey())
}

func TestLoad_ConfigKeyUsedWhenNothingStored(t *testing.T) {
	s := Load(storage.NewMemory(0), nil, Defaults{APIKey: "env-key", Getenv: noEnv})
	assert.Equal(t, "env-key", s.APIKey())
}

func TestSetters_PersistImmediately(t *testing.T) {
	kv := storage.NewMemory(0)
	s := Load(kv, nil, Defaults{Getenv: noEnv})

	s.SetAudio(AudioDisabled)
	s.SetSmartStorage(true)
	s.SetSRS(true)
	s.SetAPIKey("abc123")
	require.NoError(t, s.SetLocale("ar"))

	reloaded := Load(storage.NewMemoryFrom(kv.Snapshot()), nil, Defaults{Getenv: noEnv})
	assert.Equal(t, State{
		APIKey:       "abc123",
		Locale:       "ar",
		Audio:        AudioDisabled,
		SmartStorage: true,
		SRS:          true,
	}, reloaded.Snapshot())
	assert.False(t, reloaded.AudioEnabled())
}

func TestSetLocale_RejectsUnknown(t *testing.T) {
	s := Load(storage.NewMemory(0), nil, Defaults{Locale: "de", Getenv: noEnv})
	assert.Error(t, s.SetLocale("xx"))
	assert.Equal(t, "de", s.Locale())
}

func TestSetAndGetByName(t *testing.T) {
	s := Load(storage.NewMemory(0), nil, Defaults{Getenv: noEnv})

	require.NoError(t, s.Set("audio", "preload"))
	require.NoError(t, s.Set("smart_storage", "true"))
	require.NoError(t, s.Set("api_key", "AIzaSecret1234"))
	assert.Error(t, s.Set("audio", "sometimes"))
	assert.Error(t, s.Set("srs", "maybe"))
	assert.Error(t, s.Set("volume", "11"))

	v, err := s.Get("audio")
	require.NoError(t, err)
	assert.Equal(t, "preload", v)

	v, err = s.Get("api_key")
	require.NoError(t, err)
	assert.Equal(t, "****1234", v)

	_, err = s.Get("volume")
	assert.Error(t, err)
}

func TestSetter_PersistFailureKeepsValue(t *testing.T) {
	kv := storage.NewMemory(30)
	s := Load(kv, nil, Defaults{Locale: "en", Getenv: noEnv})
	s.SetAPIKey("a-very-long-credential-that-does-not-fit")
	assert.Equal(t, "a-very-long-credential-that-does-not-fit", s.APIKey())
}

// Package settings holds the learner's persisted preferences. Every setter
// writes through to storage before returning.
package settings

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/jeanpaul/wortschatz/internal/i18n"
	"github.com/jeanpaul/wortschatz/internal/storage"
)

// AudioMode controls when pronunciation audio is produced.
type AudioMode string

const (
	AudioPreload  AudioMode = "preload"
	AudioOnDemand AudioMode = "ondemand"
	AudioDisabled AudioMode = "disabled"
)

// ParseAudioMode accepts the persisted spelling of a mode.
func ParseAudioMode(s string) (AudioMode, bool) {
	switch AudioMode(s) {
	case AudioPreload, AudioOnDemand, AudioDisabled:
		return AudioMode(s), true
	}
	return "", false
}

// State is a snapshot of all settings.
type State struct {
	APIKey       string
	Locale       string
	Audio        AudioMode
	SmartStorage bool
	SRS          bool
}

// Defaults seeds values that are not stored yet. An empty Locale means
// detect it from the environment.
type Defaults struct {
	APIKey string
	Locale string
	Getenv func(string) string
}

// Settings is safe for concurrent use.
type Settings struct {
	mu  sync.RWMutex
	kv  storage.KV
	log *zap.Logger
	st  State
}

// Load reads every setting once, applying defaults for absent keys. When no
// locale is stored, the detected one is persisted immediately.
func Load(kv storage.KV, log *zap.Logger, d Defaults) *Settings {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Settings{kv: kv, log: log}

	s.st.APIKey = d.APIKey
	if v, ok := s.read(storage.KeyAPIKey); ok && v != "" {
		s.st.APIKey = v
	}

	s.st.Audio = AudioOnDemand
	if v, ok := s.read(storage.KeyAudio); ok {
		if m, valid := ParseAudioMode(v); valid {
			s.st.Audio = m
		}
	}
	if v, ok := s.read(storage.KeySmartStorage); ok {
		s.st.SmartStorage = v == "true"
	}
	if v, ok := s.read(storage.KeySRS); ok {
		s.st.SRS = v == "true"
	}

	if v, ok := s.read(storage.KeyLocale); ok && v != "" {
		s.st.Locale = v
	} else {
		loc := d.Locale
		if loc == "" || !i18n.Supported(loc) {
			getenv := d.Getenv
			if getenv == nil {
				getenv = os.Getenv
			}
			loc = i18n.Detect(getenv)
		}
		s.st.Locale = loc
		s.write(storage.KeyLocale, loc)
		log.Info("settings: locale detected", zap.String("locale", loc))
	}
	return s
}

func (s *Settings) read(key string) (string, bool) {
	v, ok, err := s.kv.Read(key)
	if err != nil {
		s.log.Warn("settings: read failed, using default", zap.String("key", key), zap.Error(err))
		return "", false
	}
	return v, ok
}

func (s *Settings) write(key, value string) {
	if err := s.kv.Write(key, value); err != nil {
		s.log.Error("settings: failed to persist", zap.String("key", key), zap.Error(err))
	}
}

// Snapshot returns all current values.
func (s *Settings) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st
}

func (s *Settings) APIKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.APIKey
}

func (s *Settings) SetAPIKey(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.APIKey = key
	s.write(storage.KeyAPIKey, key)
}

func (s *Settings) Locale() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.Locale
}

// SetLocale switches the interface language. Cached responses are keyed by
// locale and are left alone.
func (s *Settings) SetLocale(code string) error {
	if !i18n.Supported(code) {
		return fmt.Errorf("settings: unsupported locale %q", code)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Locale = code
	s.write(storage.KeyLocale, code)
	return nil
}

// Direction is the reading direction of the active locale.
func (s *Settings) Direction() i18n.Dir {
	return i18n.Direction(s.Locale())
}

func (s *Settings) Audio() AudioMode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.Audio
}

func (s *Settings) SetAudio(m AudioMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.Audio = m
	s.write(storage.KeyAudio, string(m))
}

// AudioEnabled reports whether pronunciation may be played at all.
func (s *Settings) AudioEnabled() bool {
	return s.Audio() != AudioDisabled
}

func (s *Settings) SmartStorage() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.SmartStorage
}

func (s *Settings) SetSmartStorage(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.SmartStorage = on
	s.write(storage.KeySmartStorage, strconv.FormatBool(on))
}

func (s *Settings) SRS() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.st.SRS
}

func (s *Settings) SetSRS(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.SRS = on
	s.write(storage.KeySRS, strconv.FormatBool(on))
}

// Set assigns a setting by its command-line name.
func (s *Settings) Set(name, value string) error {
	switch name {
	case "api_key":
		s.SetAPIKey(value)
	case "locale":
		return s.SetLocale(value)
	case "audio":
		m, ok := ParseAudioMode(value)
		if !ok {
			return fmt.Errorf("settings: audio must be preload, ondemand or disabled, got %q", value)
		}
		s.SetAudio(m)
	case "smart_storage", "srs":
		on, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("settings: %s must be true or false: %w", name, err)
		}
		if name == "srs" {
			s.SetSRS(on)
		} else {
			s.SetSmartStorage(on)
		}
	default:
		return fmt.Errorf("settings: unknown setting %q", name)
	}
	return nil
}

// Get returns a setting by its command-line name. The API key is masked.
func (s *Settings) Get(name string) (string, error) {
	st := s.Snapshot()
	switch name {
	case "api_key":
		return Mask(st.APIKey), nil
	case "locale":
		return st.Locale, nil
	case "audio":
		return string(st.Audio), nil
	case "smart_storage":
		return strconv.FormatBool(st.SmartStorage), nil
	case "srs":
		return strconv.FormatBool(st.SRS), nil
	}
	return "", fmt.Errorf("settings: unknown setting %q", name)
}

// Names lists the settings accepted by Get and Set.
var Names = []string{"api_key", "locale", "audio", "smart_storage", "srs"}

// Mask hides all but the last four characters of a credential.
func Mask(key string) string {
	if key == "" {
		return "(not set)"
	}
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

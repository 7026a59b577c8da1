package storage

import (
	"errors"
	"fmt"
)

// Keys of the persisted records. Each is an independent string value.
const (
	KeyAPIKey       = "gemini_api_key"
	KeyLocale       = "app_language"
	KeyCache        = "app_persistent_cache"
	KeyHistory      = "conv_history"
	KeySmartStorage = "smart_storage"
	KeyAudio        = "audio_setting"
	KeySRS          = "srs_enabled"
	KeyNounHistory  = "noun_history_sorted"
)

// ErrQuotaExceeded is returned by backends that refuse a write because the
// store is full.
var ErrQuotaExceeded = errors.New("storage: quota exceeded")

// KV is the durable key-value collaborator. Reads of absent keys return
// ok=false and a nil error.
type KV interface {
	Read(key string) (value string, ok bool, err error)
	Write(key, value string) error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Open returns the KV backend configured for dir. Backends holding OS
// resources also implement io.Closer.
func Open(backend, dir string) (KV, error) {
	switch backend {
	case "", BackendFile:
		return NewFileKV(dir)
	case BackendSQLite:
		return OpenSQLite(dir)
	case BackendMemory:
		return NewMemory(0), nil
	default:
		return nil, fmt.Errorf("storage: unknown backend %q (must be file, sqlite or memory)", backend)
	}
}

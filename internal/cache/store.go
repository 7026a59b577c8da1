package cache

import (
	"encoding/json"
	"errors"
	"sort"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
	"go.uber.org/zap"

	"github.com/jeanpaul/wortschatz/internal/storage"
)

var errInvalidJSON = errors.New("invalid JSON payload")

// Stats reports cache activity since the store was loaded.
type Stats struct {
	Entries         int
	Hits            int64
	Misses          int64
	PersistFailures int64
}

// Store maps fingerprints to JSON payloads. Every Put rewrites the whole map
// to durable storage; when that fails the entry stays in memory for the rest
// of the session and the failure is only logged.
type Store struct {
	mu      sync.RWMutex
	kv      storage.KV
	log     *zap.Logger
	entries map[string]json.RawMessage
	// recency is nil when the store is unbounded.
	recency *simplelru.LRU[string, struct{}]
	stats   Stats
}

// Option configures a Store.
type Option func(*Store)

// WithMaxEntries caps the store at n entries, evicting the least recently
// used fingerprint. n <= 0 leaves the store unbounded.
func WithMaxEntries(n int) Option {
	return func(s *Store) {
		if n <= 0 {
			return
		}
		l, err := simplelru.NewLRU[string, struct{}](n, func(key string, _ struct{}) {
			delete(s.entries, key)
		})
		if err == nil {
			s.recency = l
		}
	}
}

// Load reads the persisted map once. Missing or unreadable data yields an
// empty store.
func Load(kv storage.KV, log *zap.Logger, opts ...Option) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{
		kv:      kv,
		log:     log,
		entries: make(map[string]json.RawMessage),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, ok, err := kv.Read(storage.KeyCache)
	if err != nil {
		log.Error("cache: failed to read persisted cache", zap.Error(err))
		return s
	}
	if !ok || raw == "" {
		return s
	}
	var persisted map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &persisted); err != nil {
		log.Error("cache: persisted cache is corrupt, starting empty", zap.Error(err))
		return s
	}
	// Persisted data carries no recency, so a cap smaller than the map
	// keeps the lexically last fingerprints.
	keys := make([]string, 0, len(persisted))
	for k := range persisted {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		s.entries[k] = persisted[k]
		if s.recency != nil {
			s.recency.Add(k, struct{}{})
		}
	}
	log.Debug("cache: loaded", zap.Int("entries", len(s.entries)))
	return s
}

// Get returns the payload stored under fp.
func (s *Store) Get(fp string) (json.RawMessage, bool) {
	return s.lookup(fp, nil)
}

// GetInto decodes the payload under fp into v. A payload that no longer
// decodes counts as a miss.
func (s *Store) GetInto(fp string, v any) bool {
	_, ok := s.lookup(fp, v)
	return ok
}

// lookup reads fp and, when v is non-nil, decodes into it before the hit
// is counted.
func (s *Store) lookup(fp string, v any) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.entries[fp]
	if ok && v != nil {
		if err := json.Unmarshal(raw, v); err != nil {
			s.log.Warn("cache: entry does not decode", zap.String("fingerprint", fp), zap.Error(err))
			ok = false
		}
	}
	if !ok {
		s.stats.Misses++
		return nil, false
	}
	s.stats.Hits++
	if s.recency != nil {
		s.recency.Get(fp)
	}
	return raw, true
}

// Put stores payload under fp, replacing any previous value, and persists
// the whole map.
func (s *Store) Put(fp string, payload any) {
	raw, err := toRaw(payload)
	if err != nil {
		s.log.Error("cache: payload is not JSON-serialisable", zap.String("fingerprint", fp), zap.Error(err))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[fp] = raw
	if s.recency != nil {
		s.recency.Add(fp, struct{}{})
	}
	// Marshal and write under the lock so the persisted map never goes
	// backwards when two fetches resolve close together.
	data, err := json.Marshal(s.entries)
	if err == nil {
		err = s.kv.Write(storage.KeyCache, string(data))
	}
	if err != nil {
		s.stats.PersistFailures++
		s.log.Error("cache: failed to persist, entry kept for this session",
			zap.String("fingerprint", fp), zap.Error(err))
	}
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.stats
	st.Entries = len(s.entries)
	return st
}

func toRaw(payload any) (json.RawMessage, error) {
	switch p := payload.(type) {
	case json.RawMessage:
		if !json.Valid(p) {
			return nil, errInvalidJSON
		}
		return append(json.RawMessage(nil), p...), nil
	default:
		return json.Marshal(payload)
	}
}

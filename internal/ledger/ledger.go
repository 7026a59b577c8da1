// Package ledger keeps the list of generated conversations the user has
// opened, newest first.
package ledger

import (
	"encoding/json"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/jeanpaul/wortschatz/internal/storage"
)

// Record summarises one generated conversation. ID is the cache fingerprint
// the conversation was stored under.
type Record struct {
	ID        string `json:"id"`
	Topic     string `json:"topic"`
	Level     string `json:"level"`
	Length    string `json:"length"`
	Timestamp int64  `json:"timestamp"`
	// Austrian is absent on records written before the dialect mode existed;
	// those decode as false and count as standard German.
	Austrian bool `json:"isAustrian,omitempty"`
}

// Ledger is the persisted list of Records. Records are never edited or
// removed once added.
type Ledger struct {
	mu      sync.RWMutex
	kv      storage.KV
	log     *zap.Logger
	records []Record
}

// Load reads the ledger once. Missing or corrupt data yields an empty ledger.
func Load(kv storage.KV, log *zap.Logger) *Ledger {
	if log == nil {
		log = zap.NewNop()
	}
	l := &Ledger{kv: kv, log: log}

	raw, ok, err := kv.Read(storage.KeyHistory)
	if err != nil {
		log.Error("ledger: failed to read history", zap.Error(err))
		return l
	}
	if !ok || raw == "" {
		return l
	}
	if err := json.Unmarshal([]byte(raw), &l.records); err != nil {
		log.Error("ledger: history is corrupt, starting empty", zap.Error(err))
		l.records = nil
	}
	return l
}

// Record adds r at the head unless a record with the same ID exists. It
// reports whether r was added.
func (l *Ledger) Record(r Record) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.records {
		if existing.ID == r.ID {
			return false
		}
	}
	l.records = append([]Record{r}, l.records...)

	data, err := json.Marshal(l.records)
	if err == nil {
		err = l.kv.Write(storage.KeyHistory, string(data))
	}
	if err != nil {
		l.log.Error("ledger: failed to persist, record kept for this session",
			zap.String("id", r.ID), zap.Error(err))
	}
	return true
}

// List returns the records for which keep reports true, newest first. A nil
// keep returns everything.
func (l *Ledger) List(keep func(Record) bool) []Record {
	l.mu.RLock()
	out := make([]Record, 0, len(l.records))
	for _, r := range l.records {
		if keep == nil || keep(r) {
			out = append(out, r)
		}
	}
	l.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp > out[j].Timestamp
	})
	return out
}

// ByVariant selects the Austrian or the standard German conversations.
func ByVariant(austrian bool) func(Record) bool {
	return func(r Record) bool { return r.Austrian == austrian }
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}

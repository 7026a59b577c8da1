package lesson

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jeanpaul/wortschatz/internal/storage"
)

// NounHistory is the alphabetical list of nouns the learner has looked up.
// A noun found here is shown without a fetch.
type NounHistory struct {
	mu    sync.Mutex
	kv    storage.KV
	log   *zap.Logger
	col   *collate.Collator
	items []Noun
}

func LoadNounHistory(kv storage.KV, log *zap.Logger) *NounHistory {
	if log == nil {
		log = zap.NewNop()
	}
	h := &NounHistory{kv: kv, log: log, col: collate.New(language.German)}

	raw, ok, err := kv.Read(storage.KeyNounHistory)
	if err != nil {
		log.Error("nouns: failed to read history", zap.Error(err))
		return h
	}
	if !ok || raw == "" {
		return h
	}
	if err := json.Unmarshal([]byte(raw), &h.items); err != nil {
		log.Error("nouns: history is corrupt, starting empty", zap.Error(err))
		h.items = nil
	}
	return h
}

// Find looks word up ignoring case.
func (h *NounHistory) Find(word string) (Noun, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, n := range h.items {
		if strings.EqualFold(n.Word, word) {
			return n, true
		}
	}
	return Noun{}, false
}

// Save adds n, replacing an entry for the same word, and persists the list.
func (h *NounHistory) Save(n Noun) {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.items[:0]
	for _, existing := range h.items {
		if !strings.EqualFold(existing.Word, n.Word) {
			kept = append(kept, existing)
		}
	}
	h.items = append(kept, n)
	sort.SliceStable(h.items, func(i, j int) bool {
		return h.col.CompareString(h.items[i].Word, h.items[j].Word) < 0
	})

	data, err := json.Marshal(h.items)
	if err == nil {
		err = h.kv.Write(storage.KeyNounHistory, string(data))
	}
	if err != nil {
		h.log.Error("nouns: failed to persist history", zap.String("word", n.Word), zap.Error(err))
	}
}

// List returns the nouns in alphabetical order.
func (h *NounHistory) List() []Noun {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Noun(nil), h.items...)
}

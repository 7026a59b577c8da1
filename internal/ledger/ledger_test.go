package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/wortschatz/internal/storage"
)

func TestLedger_DuplicateIDKeepsFirst(t *testing.T) {
	l := Load(storage.NewMemory(0), nil)

	assert.True(t, l.Record(Record{ID: "c1", Topic: "Essen", Austrian: true, Timestamp: 100}))
	assert.False(t, l.Record(Record{ID: "c1", Topic: "Essen-dup", Austrian: true, Timestamp: 200}))

	got := l.List(func(r Record) bool { return r.Austrian })
	require.Len(t, got, 1)
	assert.Equal(t, "Essen", got[0].Topic)
	assert.Equal(t, int64(100), got[0].Timestamp)
}

func TestLedger_ListFiltersAndSortsDescending(t *testing.T) {
	l := Load(storage.NewMemory(0), nil)
	l.Record(Record{ID: "a", Timestamp: 300})
	l.Record(Record{ID: "b", Timestamp: 100, Austrian: true})
	l.Record(Record{ID: "c", Timestamp: 500})
	l.Record(Record{ID: "d", Timestamp: 200})

	std := l.List(ByVariant(false))
	ids := make([]string, 0, len(std))
	for _, r := range std {
		assert.False(t, r.Austrian)
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"c", "a", "d"}, ids)

	all := l.List(nil)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Timestamp, all[i].Timestamp)
	}
}

func TestLedger_PersistsNewestFirst(t *testing.T) {
	kv := storage.NewMemory(0)
	l := Load(kv, nil)
	l.Record(Record{ID: "conv_A1_Essen_short_en_false", Topic: "Essen", Timestamp: 1})
	l.Record(Record{ID: "conv_A2_Reisen_long_en_true", Topic: "Reisen", Timestamp: 2, Austrian: true})

	reloaded := Load(storage.NewMemoryFrom(kv.Snapshot()), nil)
	require.Equal(t, 2, reloaded.Len())
	all := reloaded.List(nil)
	assert.Equal(t, "Reisen", all[0].Topic)
	assert.True(t, all[0].Austrian)
}

func TestLedger_LegacyRecordsCountAsStandard(t *testing.T) {
	kv := storage.NewMemory(0)
	require.NoError(t, kv.Write(storage.KeyHistory, `[{"id":"x","topic":"Wetter","level":"B1","length":"short","timestamp":5}]`))

	l := Load(kv, nil)
	assert.Len(t, l.List(ByVariant(false)), 1)
	assert.Empty(t, l.List(ByVariant(true)))
}

func TestLedger_PersistFailureKeepsRecord(t *testing.T) {
	l := Load(storage.NewMemory(8), nil)
	assert.True(t, l.Record(Record{ID: "c1", Topic: "Essen", Timestamp: 1}))
	assert.Equal(t, 1, l.Len())
}
